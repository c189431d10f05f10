package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "folio"
	tokenAudience = "folio-api"
)

var (
	ErrMissingSecret    = errors.New("token secret must be provided and cannot be empty")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
)

// Claims carries the identity of the user a token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// TokenPair is an access token and a refresh token issued together.
type TokenPair struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// IssueToken creates a signed JWT for the given identity that expires ttl from now.
func IssueToken(userID, email, secret string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Email:  email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates a JWT, returning its claims.
//
// Expiry is checked before the signature, so an expired token reports
// ErrTokenExpired even when it was signed with a different secret.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}

	unverified := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified); err != nil {
		return nil, ErrInvalidToken
	}
	if exp := unverified.ExpiresAt; exp != nil && !time.Now().Before(exp.Time) {
		return nil, ErrTokenExpired
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrInvalidToken
		}
	}

	if !token.Valid || (claims.UserID == "" && claims.Email == "") {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TokenIssuer signs access and refresh tokens with independent secrets and lifetimes.
type TokenIssuer struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// IssuePair signs a fresh access and refresh token for the same identity.
func (t TokenIssuer) IssuePair(userID, email string) (TokenPair, error) {
	access, err := t.IssueAccess(userID, email)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := IssueToken(userID, email, t.RefreshSecret, t.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (t TokenIssuer) IssueAccess(userID, email string) (string, error) {
	return IssueToken(userID, email, t.AccessSecret, t.AccessTTL)
}

func (t TokenIssuer) VerifyAccess(token string) (*Claims, error) {
	return VerifyToken(token, t.AccessSecret)
}

func (t TokenIssuer) VerifyRefresh(token string) (*Claims, error) {
	return VerifyToken(token, t.RefreshSecret)
}
