// Package logger provides the service-wide structured logger built on log/slog.
//
// Handlers and services log through WithCtx so every line carries the
// request_id attached by the access-log middleware:
//
//	log := logger.WithCtx(ctx)
//	log.Info("product created", "id", p.ID)
//	// → time=... level=INFO msg="product created" request_id=5b0c... id=7
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/qcharged/product-service/config"
)

// L is the base logger. It is replaced by Setup and by tests via SetOutput.
var L *slog.Logger

func init() {
	L = slog.New(newHandler(os.Stdout, config.IsProduction()))
	slog.SetDefault(L)
}

// newHandler picks JSON output for production log aggregation and
// human-readable text everywhere else.
func newHandler(w io.Writer, production bool) slog.Handler {
	if production {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Setup rebuilds L from the loaded configuration. When LOG_MONGO_URI is set
// records are additionally shipped to MongoDB; the returned func flushes and
// closes that sink and must be called on shutdown.
func Setup() (func(), error) {
	base := newHandler(os.Stdout, config.IsProduction())

	uri := config.LogMongoURI()
	if uri == "" {
		use(base)
		return func() {}, nil
	}

	mh, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection())
	if err != nil {
		use(base)
		return func() {}, err
	}

	use(NewMultiHandler(base, mh))
	return mh.Close, nil
}

// SetOutput redirects the base logger to w. Used by tests to capture output.
func SetOutput(w io.Writer, production bool) {
	use(newHandler(w, production))
}

func use(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores a request-scoped logger in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Warn(msg string, args ...any) { L.Warn(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
