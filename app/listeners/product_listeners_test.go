package listeners_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/app/listeners"
	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/app/services"
	"github.com/qcharged/product-service/pkg/event"
	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/metrics"
	"github.com/qcharged/product-service/pkg/workerpool"
)

func eventCount(t *testing.T, name string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.ProductEvents.WithLabelValues(name).Write(&m))
	return m.GetCounter().GetValue()
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf, true)
	t.Cleanup(func() { logger.SetOutput(os.Stderr, false) })
	return &buf
}

func TestRegisteredListenersAuditEveryMutation(t *testing.T) {
	buf := captureLogs(t)
	pool := workerpool.New(2)
	bus := event.NewBus(pool)
	listeners.Register(bus)

	created := eventCount(t, services.EventProductCreated)
	deleted := eventCount(t, services.EventProductDeleted)

	product := models.Product{ID: 3, Name: "Widget", Price: decimal.RequireFromString("9.5")}
	bus.Fire(context.Background(), services.EventProductCreated, product)
	bus.Fire(context.Background(), services.EventProductDeleted, uint(3))
	pool.Shutdown()

	assert.Equal(t, created+1, eventCount(t, services.EventProductCreated))
	assert.Equal(t, deleted+1, eventCount(t, services.EventProductDeleted))
	assert.Contains(t, buf.String(), `"price":"9.50"`)
	assert.Contains(t, buf.String(), `"event":"product.deleted"`)
}

func TestUnexpectedPayloadIsAnError(t *testing.T) {
	captureLogs(t)
	before := eventCount(t, services.EventProductUpdated)

	err := listeners.AuditProductEvent(context.Background(), event.Event{
		Name:       services.EventProductUpdated,
		Payload:    "nope",
		OccurredAt: time.Now(),
	})
	assert.Error(t, err)
	assert.Equal(t, before, eventCount(t, services.EventProductUpdated))
}
