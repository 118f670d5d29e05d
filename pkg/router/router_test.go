package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte(body)) } //nolint:errcheck
}

func TestGroupRoutesAndNames(t *testing.T) {
	r := router.New()
	api := r.Group("/api/v1/products")
	api.Get("/", "products.index", ok("index"))
	api.Get("/{id}", "products.show", ok("show"))
	api.Put("/{id}", "products.update", ok("update"))
	api.Delete("/{id}", "products.destroy", ok("destroy"))
	api.Post("", "products.store", ok("store"))

	cases := []struct{ method, path, want string }{
		{http.MethodGet, "/api/v1/products", "index"},
		{http.MethodGet, "/api/v1/products/7", "show"},
		{http.MethodPut, "/api/v1/products/7", "update"},
		{http.MethodDelete, "/api/v1/products/7", "destroy"},
		{http.MethodPost, "/api/v1/products", "store"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.want, rec.Body.String(), tc.method+" "+tc.path)
	}

	names := map[string]string{}
	for _, route := range r.Routes() {
		names[route.Method+" "+route.Path] = route.Name
	}
	assert.Equal(t, "products.show", names["GET /api/v1/products/{id}"])
	assert.Equal(t, "products.store", names["POST /api/v1/products"])
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/g", mw("group"))
	g.Get("/x", "", ok("x"), mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/g/x", nil))
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestRoutesSorted(t *testing.T) {
	r := router.New()
	r.Get("/b", "b", ok(""))
	r.Post("/a", "a.store", ok(""))
	r.Get("/a", "a.index", ok(""))
	r.Handle("/metrics", "metrics", ok(""))

	routes := r.Routes()
	require.Len(t, routes, 4)
	assert.Equal(t, router.RouteInfo{Method: "GET", Path: "/a", Name: "a.index"}, routes[0])
	assert.Equal(t, "POST", routes[1].Method)
	assert.Equal(t, "/b", routes[2].Path)
	assert.Equal(t, "*", routes[3].Method)
}
