package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret-access-secret-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret-refresh-secret-refresh-secret")
	t.Setenv("DATABASE_URL", "sqlite:file::memory:")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Cookie.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Cookie.RefreshTTL)
	assert.Equal(t, 10, cfg.Bcrypt)
	assert.False(t, cfg.Cookie.Secure)
	assert.False(t, cfg.S3.Enabled())
	assert.False(t, cfg.Mail.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.RateLimitIdle)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_MissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "   ")
	t.Setenv("DATABASE_URL", "sqlite:file::memory:")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
}

func TestLoad_ProductionForcesSecureCookies(t *testing.T) {
	setRequired(t)
	t.Setenv("NODE_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Cookie.Secure)
}

func TestLoad_CookieSecureOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.Cookie.Secure)
}

func TestLoad_CustomExpiry(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRE", "15m")
	t.Setenv("JWT_REFRESH_EXPIRE", "2d")
	t.Setenv("JWT_COOKIE_EXPIRE", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 48*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cookie.AccessTTL)
}

func TestLoad_RateLimit(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_IDLE", "30s")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,127.0.0.1 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RateLimitIdle)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_InvalidExpiry(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_EXPIRE", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1h30m", want: 90 * time.Minute},
		{in: "0d", wantErr: true},
		{in: "-5m", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
