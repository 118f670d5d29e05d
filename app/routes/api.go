package routes

import (
	"context"
	"fmt"

	"github.com/qcharged/product-service/app/controllers"
	appgql "github.com/qcharged/product-service/app/graphql"
	"github.com/qcharged/product-service/pkg/ctx"
	gql "github.com/qcharged/product-service/pkg/graphql"
	"github.com/qcharged/product-service/pkg/metrics"
	"github.com/qcharged/product-service/pkg/openapi"
	"github.com/qcharged/product-service/pkg/router"
)

// Products is the service behind both the REST and GraphQL surfaces.
type Products interface {
	controllers.ProductService
	appgql.ProductReader
}

// RegisterAPI mounts the product REST API and the read-only GraphQL endpoint.
func RegisterAPI(r *router.Router, products Products) error {
	pc := controllers.NewProductController(products)

	api := r.Group("/api/v1/products")
	api.Get("/", "products.index", ctx.Wrap(pc.Index))
	api.Post("/", "products.store", ctx.Wrap(pc.Store))
	api.Get("/search", "products.search", ctx.Wrap(pc.Search))
	api.Get("/price-range", "products.price-range", ctx.Wrap(pc.PriceRange))
	api.Get("/{id}", "products.show", ctx.Wrap(pc.Show))
	api.Put("/{id}", "products.update", ctx.Wrap(pc.Update))
	api.Delete("/{id}", "products.destroy", ctx.Wrap(pc.Destroy))

	schema, err := appgql.NewSchema(products)
	if err != nil {
		return fmt.Errorf("routes: graphql schema: %w", err)
	}
	r.Handle("/graphql", "graphql", gql.Handler(schema))
	return nil
}

// RegisterSystem mounts health, metrics and API documentation.
func RegisterSystem(r *router.Router, check func(ctx context.Context) error) {
	hc := controllers.NewHealthController(check)

	r.Get("/health", "health", ctx.Wrap(hc.Show))
	r.Get("/api-docs", "api-docs", openapi.Handler())
	r.Handle("/metrics", "metrics", metrics.Handler())
}
