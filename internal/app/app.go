// Package app holds the process plumbing shared by the service binaries.
package app

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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-shop-services/internal/config"
	"github.com/ariefcatur/go-shop-services/internal/logx"
	"github.com/ariefcatur/go-shop-services/internal/postgres"
	"github.com/ariefcatur/go-shop-services/internal/redisx"
)

const shutdownTimeout = 5 * time.Second

// Init loads .env, reads the config and builds the logger. Prices are written
// as JSON numbers.
func Init(service, addr string) (config.Config, *slog.Logger) {
	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load(service, addr)
	return cfg, logx.New(cfg.ServiceName, cfg.LogLevel)
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Postgres returns nil when the service runs on in-memory storage.
func Postgres(ctx context.Context, cfg config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.InMemory() {
		log.Info("using in-memory storage")
		return nil, nil
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	log.Info("connected to postgres")
	return db, nil
}

// Redis returns nil when REDIS_ADDR is unset.
func Redis(ctx context.Context, cfg config.Config, log *slog.Logger) *redis.Client {
	rdb := redisx.New(cfg.RedisAddr)
	if rdb == nil {
		log.Info("redis disabled")
		return nil
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis ping failed, continuing", "addr", cfg.RedisAddr, "err", err)
	}
	return rdb
}

// Serve runs h on addr until ctx is cancelled, then shuts the server down.
func Serve(ctx context.Context, log *slog.Logger, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
