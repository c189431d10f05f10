package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/folio/folio-api/internal/config"
	"github.com/folio/folio-api/internal/cookie"
	"github.com/folio/folio-api/internal/crypto"
	"github.com/folio/folio-api/internal/handler"
	"github.com/folio/folio-api/internal/mail"
	"github.com/folio/folio-api/internal/middleware"
	"github.com/folio/folio-api/internal/repository"
	"github.com/folio/folio-api/internal/revocation"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database initialization failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var images storage.ImageStore = storage.Disabled{}
	if cfg.S3.Enabled() {
		s3cfg := storage.S3Config(cfg.S3)
		client, err := storage.NewS3Client(ctx, s3cfg)
		if err != nil {
			slog.Error("image storage initialization failed", "error", err)
			os.Exit(1)
		}
		images = storage.NewS3Store(client, s3cfg)
	}

	var mailer mail.Mailer = mail.Disabled{}
	if cfg.Mail.Enabled() {
		mailer = mail.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.Sender)
	}
	receiver := cfg.Mail.Receiver
	if receiver == "" {
		receiver = cfg.Mail.Sender
	}

	var denylist revocation.Denylist = revocation.Noop{}
	if cfg.RedisURL != "" {
		redisDenylist, err := revocation.NewRedisDenylistFromURL(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("token denylist initialization failed", "error", err)
			os.Exit(1)
		}
		defer redisDenylist.Close()
		denylist = redisDenylist
	}

	tokens := crypto.TokenIssuer{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}
	hasher := crypto.NewHasher(cfg.Bcrypt)

	userRepo := repository.NewUserRepository(db)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Error("invalid TRUSTED_PROXIES", "error", err)
		os.Exit(1)
	}
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:            cfg.RateLimitRPS,
		Burst:          cfg.RateLimitBurst,
		IdleTTL:        cfg.RateLimitIdle,
		TrustedProxies: proxies,
	})
	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	go limiter.Run(limiterCtx)

	router := handler.NewRouter(handler.Deps{
		Auth:          service.NewAuthService(userRepo, hasher, tokens, denylist),
		Users:         service.NewUserService(userRepo, hasher, tokens, images),
		Blogs:         service.NewBlogService(repository.NewBlogRepository(db), images),
		Projects:      service.NewProjectService(repository.NewProjectRepository(db), images),
		Skills:        service.NewSkillService(repository.NewSkillRepository(db), images),
		Contact:       service.NewContactService(mailer, receiver),
		Authenticator: middleware.NewAuthenticator(userRepo, tokens, denylist, !cfg.IsProduction()),
		Images:        images,
		Cookies:       cookie.NewWriter(cfg.IsProduction(), cfg.Cookie.Secure, cfg.Cookie.AccessTTL, cfg.Cookie.RefreshTTL),
		Env:           cfg.Env,
		FrontendURL:   cfg.FrontendURL,
		RateLimiter:   limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"image_storage", cfg.S3.Enabled(),
			"mail", cfg.Mail.Enabled(),
			"token_denylist", cfg.RedisURL != "",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopLimiter()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	slog.Info("server stopped")
}
