package service

import (
	"context"
	"errors"
	"strings"

	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/model"
	"github.com/folio/folio-api/internal/repository"
	"github.com/folio/folio-api/internal/revocation"
)

// UserStore is the credential store the auth and user services run against.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// LoginResult is the public user projection plus a fresh token pair.
type LoginResult struct {
	User   model.UserResponse `json:"user"`
	Tokens crypto.TokenPair   `json:"-"`
}

// AuthService handles authentication business logic.
type AuthService struct {
	users     UserStore
	hasher    PasswordHasher
	tokens    crypto.TokenIssuer
	denylist  revocation.Denylist
	dummyHash string
}

// NewAuthService creates a new AuthService. A nil denylist disables revocation.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens crypto.TokenIssuer, denylist revocation.Denylist) *AuthService {
	if denylist == nil {
		denylist = revocation.Noop{}
	}

	// Compared against when the email is unknown, so both login failures cost one bcrypt compare.
	dummy, _ := hasher.Hash("folio-login-timing-equalizer")

	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		denylist:  denylist,
		dummyHash: dummy,
	}
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (LoginResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return LoginResult{}, invalid("email", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = s.hasher.Compare(s.dummyHash, req.Password)
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(user.Password, req.Password); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: user.Public(), Tokens: tokens}, nil
}

// Refresh mints a new access token from a refresh token.
// The refresh token itself is returned unchanged; it is not rotated on use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (crypto.TokenPair, error) {
	if refreshToken == "" {
		return crypto.TokenPair{}, ErrMissingToken
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return crypto.TokenPair{}, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, refreshToken)
	if err != nil {
		return crypto.TokenPair{}, err
	}
	if revoked {
		return crypto.TokenPair{}, revocation.ErrTokenRevoked
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return crypto.TokenPair{}, ErrUserNotFound
		}
		return crypto.TokenPair{}, err
	}

	access, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return crypto.TokenPair{}, err
	}

	return crypto.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout denylists the presented tokens until they expire. Tokens that no longer
// verify are skipped. With the Noop denylist this does nothing.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		if claims, err := s.tokens.VerifyAccess(accessToken); err == nil {
			if err := s.denylist.Revoke(ctx, accessToken, claims.ExpiresAt.Time); err != nil {
				return err
			}
		}
	}
	if refreshToken != "" {
		if claims, err := s.tokens.VerifyRefresh(refreshToken); err == nil {
			if err := s.denylist.Revoke(ctx, refreshToken, claims.ExpiresAt.Time); err != nil {
				return err
			}
		}
	}
	return nil
}

// ChangePassword replaces the password of userID after checking the old one.
// Tokens issued before the change stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req model.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return invalid("newPassword", "old and new password are required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.hasher.Compare(user.Password, req.OldPassword); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return passwordError(err)
	}

	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func passwordError(err error) error {
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return invalid("password", err.Error())
	}
	return err
}
