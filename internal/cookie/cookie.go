// Package cookie writes and clears the session cookies that carry the token pair.
package cookie

import (
	"net/http"
	"time"

	"github.com/folio/folio-api/internal/crypto"
)

const (
	AccessName  = "accessToken"
	RefreshName = "refreshToken"
)

// Writer sets the auth cookies with one consistent set of attributes.
// Cookie lifetimes are independent of the expiry embedded in the tokens.
type Writer struct {
	Secure     bool
	SameSite   http.SameSite
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewWriter derives the cookie policy from the environment: production cookies
// are Secure and SameSite=None, otherwise SameSite=Lax and Secure only when forced.
func NewWriter(production, forceSecure bool, accessTTL, refreshTTL time.Duration) Writer {
	w := Writer{
		Secure:     production || forceSecure,
		SameSite:   http.SameSiteLaxMode,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
	if production {
		w.SameSite = http.SameSiteNoneMode
	}
	return w
}

// Set writes the tokens that are present in pair. Empty tokens are skipped.
func (cw Writer) Set(w http.ResponseWriter, pair crypto.TokenPair) {
	if pair.AccessToken != "" {
		http.SetCookie(w, cw.cookie(AccessName, pair.AccessToken, cw.AccessTTL))
	}
	if pair.RefreshToken != "" {
		http.SetCookie(w, cw.cookie(RefreshName, pair.RefreshToken, cw.RefreshTTL))
	}
}

// Clear expires both cookies using the attributes they were set with.
func (cw Writer) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessName, RefreshName} {
		c := cw.cookie(name, "", 0)
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		http.SetCookie(w, c)
	}
}

func (cw Writer) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cw.Secure,
		SameSite: cw.SameSite,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
		c.Expires = time.Now().Add(ttl)
	}
	return c
}
