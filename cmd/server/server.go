package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/open-ecommerce/helptext-sub000/internal/config"
	"github.com/open-ecommerce/helptext-sub000/internal/db"
	"github.com/open-ecommerce/helptext-sub000/internal/services"
	"github.com/open-ecommerce/helptext-sub000/internal/transport"
	"github.com/open-ecommerce/helptext-sub000/pkg/logger"
	"github.com/open-ecommerce/helptext-sub000/router"
)

var version = "dev"

// SetupServer initializes and returns a configured HTTP server
func SetupServer(cfg *config.Config) (*http.Server, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	if cfg.Server.Port <= 0 {
		return nil, errors.New("invalid server port")
	}

	// Initialize database
	database, err := db.NewDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Seed default settings and demo data if enabled
	if cfg.Seed.Enable {
		if err := database.Seed(); err != nil {
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	// Initialize repositories
	helperRepo := db.NewHelperRepository(database.GetDB())
	contactRepo := db.NewContactRepository(database.GetDB())
	caseRepo := db.NewCaseRepository(database.GetDB())
	messageRepo := db.NewMessageRepository(database.GetDB())
	settingsRepo := db.NewSettingsRepository(database.GetDB())

	// Select the transport provider once at startup from settings
	settings, err := settingsRepo.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	provider, err := transport.New(settings.Provider, transport.Config{
		From:             cfg.Transport.From,
		TwilioAccountSID: cfg.Transport.TwilioAccountSID,
		TwilioAuthToken:  cfg.Transport.TwilioAuthToken,
		TwilioAPIURL:     cfg.Transport.TwilioAPIURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transport provider: %w", err)
	}
	logger.Info("Transport provider selected", zap.String("provider", settings.Provider))

	// Initialize services
	identityService := services.NewIdentityService(helperRepo, contactRepo)
	threadService := services.NewThreadService(caseRepo, helperRepo, helperRepo)
	routerService := services.NewRouterService(
		identityService,
		threadService,
		messageRepo,
		settingsRepo,
		provider,
	)

	// Initialize HTTP surface
	httpRouter := router.NewRouter(routerService, cfg.Transport.InboundAccountID)

	// Create server with security timeouts
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           httpRouter,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return srv, nil
}

// StartServer starts the HTTP server and handles graceful shutdown
func StartServer(srv *http.Server) error {
	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("addr", srv.Addr),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a timeout context for shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// StartServerWithContext starts the HTTP server with a context for shutdown control
func StartServerWithContext(ctx context.Context, srv *http.Server) error {
	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()

	logger.Info("Shutting down server...")

	// Create a timeout context for shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
