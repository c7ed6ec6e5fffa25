package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projecthub/config"
	"projecthub/credentials"
	"projecthub/database"
	"projecthub/handlers"
	"projecthub/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	store, err := database.Open(cfg.DatabaseURL, logging.GormLogger(logger, cfg.SQLDebug))
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.Ping(pingCtx)
	cancelPing()
	if err != nil {
		logger.Fatalf("Database unreachable: %v", err)
	}

	creds := credentials.NewService(cfg.SecretKey, cfg.TokenTTL)

	// Bootstrap the first admin
	hash, err := creds.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Fatalf("Failed to hash admin password: %v", err)
	}
	created, err := store.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, hash)
	if err != nil {
		logger.Fatalf("Failed to create admin user: %v", err)
	}
	if created {
		logger.WithField("email", cfg.AdminEmail).Warn("Created default admin user; change its password")
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handlers.NewRouter(cfg, logger, store, creds),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
