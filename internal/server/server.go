// Package server boots the service and runs the HTTP and gRPC listeners
// until the process is asked to stop.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/qcharged/product-service/app/listeners"
	"github.com/qcharged/product-service/app/repositories"
	"github.com/qcharged/product-service/app/services"
	"github.com/qcharged/product-service/config"
	_ "github.com/qcharged/product-service/database/migrations"
	"github.com/qcharged/product-service/internal/kernel"
	"github.com/qcharged/product-service/pkg/database"
	"github.com/qcharged/product-service/pkg/event"
	grpcserver "github.com/qcharged/product-service/pkg/grpc"
	"github.com/qcharged/product-service/pkg/kv"
	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/migration"
	"github.com/qcharged/product-service/pkg/ratelimit"
	"github.com/qcharged/product-service/pkg/workerpool"
)

// App is a booted service: connections, the event bus and the HTTP kernel.
type App struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Pool   *workerpool.Pool
	Bus    *event.Bus
	Kernel *kernel.HTTPKernel

	closers []func()
}

// Boot loads configuration, connects the database (and Redis when
// configured), applies migrations and wires the HTTP kernel.
func Boot(ctx context.Context) (*App, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("server: config: %w", err)
	}

	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	flushLogs, err := logger.Setup()
	if err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
	}
	a.closers = append(a.closers, flushLogs)

	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("server: database: %w", err)
	}
	a.DB = database.DB
	a.closers = append(a.closers, func() { _ = database.Close(a.DB) })

	if config.AutoMigrate() {
		ran, err := migration.New(a.DB).Run()
		if err != nil {
			return nil, fmt.Errorf("server: migrate: %w", err)
		}
		if len(ran) > 0 {
			logger.Info("migrations applied", "migrations", ran)
		}
	}

	a.Pool = workerpool.New(config.EventWorkers(), workerpool.WithPanicHandler(func(r any) {
		logger.Error("event worker panicked", "panic", fmt.Sprint(r))
	}))
	a.closers = append(a.closers, a.Pool.Shutdown)
	a.Bus = event.NewBus(a.Pool)
	listeners.Register(a.Bus)

	limiter := a.rateLimiter(ctx)

	repo := repositories.NewProductRepository(a.DB)
	svc := services.NewProductService(repo, a.Bus)

	a.Kernel, err = kernel.NewHTTPKernel(kernel.Deps{
		Products:   svc,
		Health:     a.Ping,
		Limiter:    limiter,
		TrustProxy: config.TrustProxy(),
	})
	if err != nil {
		return nil, err
	}

	ok = true
	return a, nil
}

// rateLimiter prefers a shared Redis store and falls back to memory.
func (a *App) rateLimiter(ctx context.Context) *ratelimit.Limiter {
	perMinute := config.RateLimitPerMinute()
	if perMinute <= 0 {
		return nil
	}

	client, err := kv.Connect(ctx)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, rate limiting per instance", "error", err)
	case client != nil:
		a.Redis = client
		a.closers = append(a.closers, func() { _ = client.Close() })
		return ratelimit.New(ratelimit.NewRedisStore(client, "productsvc:ratelimit:"), perMinute, time.Minute)
	}

	store := ratelimit.NewMemoryStore(time.Minute)
	a.closers = append(a.closers, store.Close)
	return ratelimit.New(store, perMinute, time.Minute)
}

// Ping reports database health.
func (a *App) Ping(ctx context.Context) error {
	return database.Ping(ctx, a.DB)
}

// Close releases everything Boot opened, newest first.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Start boots the app and serves HTTP and gRPC until SIGINT or SIGTERM.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort(), a.Ping)
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	lis, err := net.Listen("tcp", ":"+config.AppPort())
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}

	logger.Info("product service running", "addr", lis.Addr().String(), "env", config.AppEnv())
	return Serve(ctx, NewHTTPServer(a.Kernel.Handler()), lis, config.ShutdownTimeout())
}

// NewHTTPServer applies the connection timeouts used in production.
func NewHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Serve runs srv on lis until ctx is done, then drains in-flight requests
// for at most timeout.
func Serve(ctx context.Context, srv *http.Server, lis net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", timeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
