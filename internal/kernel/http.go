// Package kernel assembles the HTTP handler: global middleware, system
// endpoints and the product routes.
package kernel

import (
	"context"
	"fmt"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/qcharged/product-service/app/routes"
	"github.com/qcharged/product-service/pkg/metrics"
	"github.com/qcharged/product-service/pkg/middleware"
	"github.com/qcharged/product-service/pkg/ratelimit"
	"github.com/qcharged/product-service/pkg/reqid"
	"github.com/qcharged/product-service/pkg/response"
	"github.com/qcharged/product-service/pkg/router"
)

// Deps are the collaborators the kernel wires into routes.
type Deps struct {
	Products routes.Products
	// Health backs GET /health. Nil always reports UP.
	Health func(ctx context.Context) error
	// Limiter throttles clients. Nil disables rate limiting.
	Limiter *ratelimit.Limiter
	// TrustProxy takes the client IP from X-Forwarded-For.
	TrustProxy bool
	CORS       *middleware.CORSOptions
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Global middleware, outermost first:
//
//  1. metrics   total latency by route pattern
//  2. reqid     request ID before anything logs
//  3. Logger    access log with request_id
//  4. Recovery  panics become a uniform 500
//  5. CORS      browser headers and preflight
//  6. RateLimit per client IP
//  7. StripSlashes /api/v1/products/ routes like /api/v1/products
func NewHTTPKernel(deps Deps) (*HTTPKernel, error) {
	r := router.New()

	cors := middleware.DefaultCORSOptions()
	if deps.CORS != nil {
		cors = *deps.CORS
	}

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cors))
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter, deps.TrustProxy))
	}
	r.Use(chimw.StripSlashes)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	routes.RegisterSystem(r, deps.Health)
	if err := routes.RegisterAPI(r, deps.Products); err != nil {
		return nil, err
	}

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Router() *router.Router { return k.router }

func notFound(w http.ResponseWriter, r *http.Request) {
	response.Error(w, r, http.StatusNotFound, response.TitleNotFound,
		fmt.Sprintf("No handler found for %s %s", r.Method, r.URL.Path))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Error(w, r, http.StatusMethodNotAllowed, response.TitleMethodNotAllowed,
		fmt.Sprintf("Request method '%s' is not supported", r.Method))
}
