// Package listeners reacts to product lifecycle events.
package listeners

import (
	"context"
	"fmt"

	"github.com/qcharged/product-service/app/models"
	"github.com/qcharged/product-service/app/services"
	"github.com/qcharged/product-service/pkg/event"
	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/metrics"
)

// Register subscribes the product listeners to bus.
func Register(bus *event.Bus) {
	for _, name := range []string{
		services.EventProductCreated,
		services.EventProductUpdated,
		services.EventProductDeleted,
	} {
		bus.ListenAsync(name, AuditProductEvent)
	}
}

// AuditProductEvent writes an audit log line and counts the event.
func AuditProductEvent(ctx context.Context, e event.Event) error {
	log := logger.WithCtx(ctx).With("event", e.Name, "occurred_at", e.OccurredAt)

	switch p := e.Payload.(type) {
	case models.Product:
		log.Info("product audit", "product_id", p.ID, "name", p.Name, "price", p.Price.StringFixed(models.PriceScale))
	case uint:
		log.Info("product audit", "product_id", p)
	default:
		return fmt.Errorf("listeners: unexpected payload %T for %s", e.Payload, e.Name)
	}

	metrics.RecordProductEvent(e.Name)
	return nil
}
