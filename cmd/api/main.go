package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/folio-works/portfolio-backend/config"
	"github.com/folio-works/portfolio-backend/internal/auth"
	"github.com/folio-works/portfolio-backend/internal/bootstrap"
	"github.com/folio-works/portfolio-backend/internal/chatbot"
	"github.com/folio-works/portfolio-backend/internal/contact"
	"github.com/folio-works/portfolio-backend/internal/flows"
	"github.com/folio-works/portfolio-backend/internal/logger"
	"github.com/folio-works/portfolio-backend/internal/pagecache"
	"github.com/folio-works/portfolio-backend/internal/projects/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("portfolio-backend: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zl, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zl.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  cfg.IsProduction(),
		RatePerMinute:  cfg.Chat.RatePerMinute,
		Log:            zl,
		Store:          store,
		Cache:          pagecache.Noop{},
	}

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{RedisConfig: cfg.Redis})
	if err != nil {
		zl.Warn("page cache unavailable, serving uncached", zap.Error(err))
	} else if rdb != nil {
		defer rdb.Close()
		cache := pagecache.New(rdb, cfg.Redis.PageTTL, zl.Named("pagecache"))
		deps.Cache = cache
		deps.CachePing = cache
	}

	deps.Projects = service.NewProjectService(store, deps.Cache, zl.Named("projects"))
	deps.Passwords = auth.NewPasswordChecker(cfg.Admin.Password, cfg.Admin.PasswordHash)
	deps.Tokens = auth.NewTokenService([]byte(cfg.Admin.JWTSecret), cfg.Admin.SessionTTL)
	deps.Bot = chatbot.New(cfg.Chat.MinDelay, cfg.Chat.MaxDelay)
	deps.Contact = contact.NewService(newMailer(cfg.Mail, zl), zl.Named("contact"))
	deps.Flows = newFlows(ctx, cfg.GenAI, zl)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      bootstrap.BuildRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		zl.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("store", cfg.Store.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func newMailer(cfg config.MailConfig, zl *zap.Logger) contact.Mailer {
	if cfg.Host == "" {
		return contact.NewLogMailer(zl.Named("mail"))
	}
	m, err := contact.NewSMTPMailer(contact.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		To:       cfg.To,
	})
	if err != nil {
		zl.Warn("smtp disabled", zap.Error(err))
		return contact.NewLogMailer(zl.Named("mail"))
	}
	return m
}

func newFlows(ctx context.Context, cfg config.GenAIConfig, zl *zap.Logger) *flows.Service {
	if cfg.APIKey == "" {
		return flows.NewService(nil, zl.Named("flows"))
	}
	gen, err := flows.NewGenAIGenerator(ctx, flows.GenAIConfig{
		APIKey:      cfg.APIKey,
		TextModel:   cfg.TextModel,
		ImageModel:  cfg.ImageModel,
		SpeechModel: cfg.SpeechModel,
		Voice:       cfg.Voice,
	})
	if err != nil {
		zl.Warn("generative flows disabled", zap.Error(err))
		return flows.NewService(nil, zl.Named("flows"))
	}
	return flows.NewService(gen, zl.Named("flows"))
}
