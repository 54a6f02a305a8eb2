package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/taskvault/internal/config"
	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/handler"
	"github.com/msomdec/taskvault/internal/logging"
	"github.com/msomdec/taskvault/internal/repository/postgres"
	"github.com/msomdec/taskvault/internal/repository/sqlite"
	"github.com/msomdec/taskvault/internal/service"
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout, os.Stderr)
	if err != nil {
		slog.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	hasher, err := service.NewPasswordHasher(cfg)
	if err != nil {
		slog.Error("failed to create password hasher", "error", err)
		os.Exit(1)
	}
	tokens, err := service.NewTokenService(cfg)
	if err != nil {
		slog.Error("failed to create token service", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Store:    store,
		Tokens:   tokens,
		Resolver: service.NewIdentityResolver(tokens),
		Accounts: service.NewAccountService(hasher),
		Tasks:    service.NewTaskService(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.RequestLogger(logger, handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "hasher", cfg.PasswordHasher)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	driver, dsn := cfg.Database()
	slog.Info("opening database", "driver", driver)

	switch driver {
	case config.DriverPostgres:
		return postgres.New(ctx, dsn)
	case config.DriverSQLite:
		return sqlite.New(dsn)
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}
