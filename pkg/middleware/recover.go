// Package middleware provides the HTTP middleware stack.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns the uniform 500 body.
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
//	r.Use(middleware.Recovery)   // ← catches panics from all below
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Internal(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
