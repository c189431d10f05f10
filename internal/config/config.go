package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MinSecretLength is the recommended minimum length for token signing secrets.
const MinSecretLength = 32

// ErrMissing is returned when a required configuration key is not set.
var ErrMissing = errors.New("missing required configuration")

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	FrontendURL string

	JWT      JWT
	Cookie   Cookie
	Bcrypt   int
	S3       S3
	Mail     Mail
	RedisURL string

	RateLimitRPS   float64
	RateLimitBurst int
	RateLimitIdle  time.Duration
	// TrustedProxies are the CIDRs or addresses allowed to set X-Forwarded-For.
	TrustedProxies []string
}

type JWT struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type Cookie struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type S3 struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

// Enabled reports whether enough settings are present to talk to a bucket.
func (s S3) Enabled() bool {
	return s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

type Mail struct {
	ResendAPIKey string
	Sender       string
	Receiver     string
}

func (m Mail) Enabled() bool {
	return m.ResendAPIKey != "" && m.Sender != ""
}

// IsProduction reports whether the process runs with a production environment flag.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("JWT_EXPIRE", "7d")
	v.SetDefault("JWT_REFRESH_EXPIRE", "30d")
	v.SetDefault("JWT_COOKIE_EXPIRE", 7)
	v.SetDefault("JWT_REFRESH_COOKIE_EXPIRE", 30)
	v.SetDefault("BCRYPT_SALT_ROUNDS", 10)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_IDLE", "10m")

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	cfg := Config{
		Port:        v.GetString("PORT"),
		Env:         env,
		DatabaseURL: v.GetString("DATABASE_URL"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		JWT: JWT{
			AccessSecret:  strings.TrimSpace(v.GetString("JWT_SECRET")),
			RefreshSecret: strings.TrimSpace(v.GetString("JWT_REFRESH_SECRET")),
		},
		Bcrypt: v.GetInt("BCRYPT_SALT_ROUNDS"),
		S3: S3{
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			Bucket:    v.GetString("S3_BUCKET"),
			Region:    v.GetString("S3_REGION"),
			Endpoint:  v.GetString("S3_ENDPOINT"),
			PublicURL: v.GetString("S3_PUBLIC_URL"),
		},
		Mail: Mail{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			Sender:       v.GetString("CONTACT_SENDER_EMAIL"),
			Receiver:     v.GetString("CONTACT_RECEIVER_EMAIL"),
		},
		RedisURL:       v.GetString("REDIS_URL"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
	}

	var missing []string
	if cfg.JWT.AccessSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.JWT.RefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	if len(cfg.JWT.AccessSecret) < MinSecretLength {
		slog.Warn("JWT_SECRET should be at least 32 characters long")
	}
	if len(cfg.JWT.RefreshSecret) < MinSecretLength {
		slog.Warn("JWT_REFRESH_SECRET should be at least 32 characters long")
	}

	var err error
	if cfg.JWT.AccessTTL, err = ParseDuration(v.GetString("JWT_EXPIRE")); err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRE: %w", err)
	}
	if cfg.JWT.RefreshTTL, err = ParseDuration(v.GetString("JWT_REFRESH_EXPIRE")); err != nil {
		return Config{}, fmt.Errorf("JWT_REFRESH_EXPIRE: %w", err)
	}
	if cfg.RateLimitIdle, err = ParseDuration(v.GetString("RATE_LIMIT_IDLE")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_IDLE: %w", err)
	}

	cfg.Cookie = Cookie{
		Secure:     cfg.IsProduction() || v.GetBool("COOKIE_SECURE"),
		AccessTTL:  days(v.GetInt("JWT_COOKIE_EXPIRE"), 7),
		RefreshTTL: days(v.GetInt("JWT_REFRESH_COOKIE_EXPIRE"), 30),
	}

	return cfg, nil
}

// ParseDuration accepts Go durations ("15m", "2h") and whole days ("7d").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, ok := strings.CutSuffix(s, "d"); ok {
		d, err := strconv.Atoi(n)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(d) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %q", s)
	}
	return d, nil
}

func days(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * 24 * time.Hour
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
