package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueToken(t *testing.T) {
	token, err := IssueToken("u-42", "a@b.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken() returned empty string")
	}
}

func TestIssueTokenEmptySecret(t *testing.T) {
	for _, secret := range []string{"", "   "} {
		if _, err := IssueToken("u-42", "a@b.com", secret, time.Hour); err != ErrMissingSecret {
			t.Errorf("IssueToken(%q) error = %v, want ErrMissingSecret", secret, err)
		}
	}
}

func TestVerifyTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := IssueToken("u-42", "a@b.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}

	claims, err := VerifyToken(token, secret)
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}
	if claims.UserID != "u-42" {
		t.Errorf("VerifyToken() UserID = %q, want %q", claims.UserID, "u-42")
	}
	if claims.Email != "a@b.com" {
		t.Errorf("VerifyToken() Email = %q, want %q", claims.Email, "a@b.com")
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	if _, err := VerifyToken("not-a-valid-token", "test-secret"); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenEmptySecret(t *testing.T) {
	token, err := IssueToken("u-42", "a@b.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}
	if _, err := VerifyToken(token, ""); err != ErrMissingSecret {
		t.Errorf("VerifyToken() error = %v, want ErrMissingSecret", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("u-42", "a@b.com", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}

	if _, err := VerifyToken(token, "wrong-secret"); err != ErrInvalidSignature {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := IssueToken("u-42", "a@b.com", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}

	if _, err := VerifyToken(token, "test-secret"); err != ErrTokenExpired {
		t.Errorf("VerifyToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTokenExpiredWrongSecret(t *testing.T) {
	token, err := IssueToken("u-42", "a@b.com", "some-other-secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}

	if _, err := VerifyToken(token, "test-secret"); err != ErrTokenExpired {
		t.Errorf("VerifyToken() error = %v, want ErrTokenExpired", err)
	}
}

func signClaims(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

func TestVerifyTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"
	token := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u-42",
	}, secret)

	if _, err := VerifyToken(token, secret); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenWrongAudience(t *testing.T) {
	secret := "test-secret"
	token := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{"wrong-audience"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u-42",
	}, secret)

	if _, err := VerifyToken(token, secret); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenWithoutExpiry(t *testing.T) {
	secret := "test-secret"
	token := signClaims(t, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Audience: jwt.ClaimStrings{tokenAudience},
		},
		UserID: "u-42",
	}, secret)

	if _, err := VerifyToken(token, secret); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenIssuerSecretsAreIndependent(t *testing.T) {
	issuer := TokenIssuer{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	}

	pair, err := issuer.IssuePair("u-42", "a@b.com")
	if err != nil {
		t.Fatalf("IssuePair() unexpected error: %v", err)
	}

	if _, err := issuer.VerifyAccess(pair.AccessToken); err != nil {
		t.Errorf("VerifyAccess(access) unexpected error: %v", err)
	}
	if _, err := issuer.VerifyRefresh(pair.RefreshToken); err != nil {
		t.Errorf("VerifyRefresh(refresh) unexpected error: %v", err)
	}
	if _, err := issuer.VerifyRefresh(pair.AccessToken); err != ErrInvalidSignature {
		t.Errorf("VerifyRefresh(access) error = %v, want ErrInvalidSignature", err)
	}
	if _, err := issuer.VerifyAccess(pair.RefreshToken); err != ErrInvalidSignature {
		t.Errorf("VerifyAccess(refresh) error = %v, want ErrInvalidSignature", err)
	}
}

func TestTokenIssuerPairSharesClaims(t *testing.T) {
	issuer := TokenIssuer{AccessSecret: "a", RefreshSecret: "r", AccessTTL: time.Hour, RefreshTTL: time.Hour}

	pair, err := issuer.IssuePair("u-7", "seven@example.com")
	if err != nil {
		t.Fatalf("IssuePair() unexpected error: %v", err)
	}

	access, err := issuer.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess() unexpected error: %v", err)
	}
	refresh, err := issuer.VerifyRefresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyRefresh() unexpected error: %v", err)
	}

	if access.UserID != refresh.UserID || access.Email != refresh.Email {
		t.Errorf("claims differ: access=%+v refresh=%+v", access, refresh)
	}
}
