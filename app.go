package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msomdec/notekeeper/internal/config"
	"github.com/msomdec/notekeeper/internal/domain"
	"github.com/msomdec/notekeeper/internal/handler"
	"github.com/msomdec/notekeeper/internal/repository/postgres"
	"github.com/msomdec/notekeeper/internal/repository/sqlite"
	"github.com/msomdec/notekeeper/internal/result"
	"github.com/msomdec/notekeeper/internal/service"
)

const shutdownTimeout = 5 * time.Second

// openStore connects to the configured backend and applies migrations.
func openStore(ctx context.Context, cfg *config.Config) (domain.Store, error) {
	var (
		store domain.Store
		err   error
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		store, err = postgres.Connect(ctx, cfg.Database.URL)
	case config.DriverSQLite:
		store, err = sqlite.New(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied", "driver", cfg.Database.Driver)
	return store, nil
}

func newAuthService(store domain.Store, cfg *config.Config) *service.AuthService {
	return service.NewAuthService(store.Users(), cfg.Auth.JWTSecret, cfg.Auth.BcryptCost, cfg.TokenTTL())
}

func runMigrate(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	return store.Close()
}

func runSeed(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if !cfg.SeedEnabled() {
		slog.Warn("seed skipped: SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are not set")
		return nil
	}
	return seedAdmin(ctx, newAuthService(store, cfg), cfg.Seed)
}

// seedAdmin registers the admin account. An existing account with the same
// email counts as already seeded.
func seedAdmin(ctx context.Context, auth *service.AuthService, seed config.SeedConfig) error {
	name := seed.AdminName
	if name == "" {
		name = "admin"
	}
	res := auth.Register(ctx, service.RegisterInput{
		Name:     name,
		Email:    seed.AdminEmail,
		Phone:    seed.AdminPhone,
		Password: seed.AdminPassword,
	})
	switch {
	case res.IsSuccess():
		slog.Info("admin account seeded", "email", seed.AdminEmail)
		return nil
	case res.FirstCode() == result.CodeEmailAlreadyExists:
		slog.Info("admin account already seeded", "email", seed.AdminEmail)
		return nil
	default:
		return fmt.Errorf("seed admin: %w", errors.Join(errorsOf(res.Errors())...))
	}
}

func errorsOf(errs []result.Error) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// newHTTPServer wires services and routes onto a server. The returned
// cleanup releases the rate limiter. A zero AUTH_RATE_LIMIT leaves the auth
// routes unlimited.
func newHTTPServer(store domain.Store, cfg *config.Config) (*http.Server, func()) {
	deps := handler.Deps{
		Store:        store,
		Auth:         newAuthService(store, cfg),
		Notes:        service.NewNoteService(store.Notes()),
		CookieSecure: cfg.Auth.CookieSecure,
	}
	cleanup := func() {}
	if cfg.Auth.RateLimit > 0 {
		limiter := service.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst)
		deps.AuthLimiter = limiter
		cleanup = limiter.Close
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler.Wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
	return srv, cleanup
}

func runServe(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.SeedEnabled() {
		if err := seedAdmin(ctx, newAuthService(store, cfg), cfg.Seed); err != nil {
			return err
		}
	}

	srv, cleanup := newHTTPServer(store, cfg)
	defer cleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	})
	return g.Wait()
}
