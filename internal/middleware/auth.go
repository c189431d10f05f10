package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/folio/folio-api/internal/cookie"
	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/repository"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/revocation"
)

type contextKey string

const identityKey contextKey = "identity"

// UserLookup resolves token claims to a stored user.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator attaches the identity carried by an access token to the request.
type Authenticator struct {
	users    UserLookup
	tokens   crypto.TokenIssuer
	denylist revocation.Denylist
	debug    bool
}

// NewAuthenticator creates an Authenticator. A nil denylist disables revocation checks.
func NewAuthenticator(users UserLookup, tokens crypto.TokenIssuer, denylist revocation.Denylist, debug bool) *Authenticator {
	if denylist == nil {
		denylist = revocation.Noop{}
	}
	return &Authenticator{users: users, tokens: tokens, denylist: denylist, debug: debug}
}

// TokenFromRequest returns the Bearer token from the Authorization header,
// falling back to the access token cookie.
func TokenFromRequest(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(cookie.AccessName); err == nil {
		return c.Value
	}
	return ""
}

// RequireAuth rejects requests without a valid access token. Token errors and
// store failures go through the shared error mapping.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			response.Fail(w, http.StatusUnauthorized, "User not authenticated")
			return
		}

		identity, err := a.identify(r.Context(), token)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				response.Fail(w, http.StatusUnauthorized, "User not authenticated")
				return
			}
			response.Error(w, err, a.debug)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) identify(ctx context.Context, token string) (model.Identity, error) {
	claims, err := a.tokens.VerifyAccess(token)
	if err != nil {
		return model.Identity{}, err
	}

	revoked, err := a.denylist.IsRevoked(ctx, token)
	if err != nil {
		return model.Identity{}, err
	}
	if revoked {
		return model.Identity{}, revocation.ErrTokenRevoked
	}

	var user *model.User
	switch {
	case claims.UserID != "":
		user, err = a.users.GetByID(ctx, claims.UserID)
	case claims.Email != "":
		user, err = a.users.GetByEmail(ctx, claims.Email)
	default:
		return model.Identity{}, repository.ErrUserNotFound
	}
	if err != nil {
		return model.Identity{}, err
	}

	return model.Identity{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// IdentityFromContext returns the identity attached by RequireAuth.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	id, ok := ctx.Value(identityKey).(model.Identity)
	return id, ok
}
