package server_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/config"
	"github.com/qcharged/product-service/internal/server"
	"github.com/qcharged/product-service/pkg/logger"
)

func TestBootWiresEverything(t *testing.T) {
	config.Set("DB_DRIVER", "sqlite")
	config.Set("DATABASE_DSN", fmt.Sprintf("file:boot_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	config.Set("REDIS_ADDR", "")
	config.Set("LOG_MONGO_URI", "")
	config.Set("RATE_LIMIT_PER_MINUTE", "100")
	t.Cleanup(func() { logger.SetOutput(os.Stderr, false) })

	a, err := server.Boot(context.Background())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Redis)
	assert.True(t, a.DB.Migrator().HasTable(&models.Product{}))
	require.NoError(t, a.Ping(context.Background()))

	rec := httptest.NewRecorder()
	a.Kernel.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/products",
		strings.NewReader(`{"name":"Boot","price":1}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "99", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestServeStopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.NewHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "ok") //nolint:errcheck
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, srv, lis, time.Second) }()

	resp, err := http.Get("http://" + lis.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
