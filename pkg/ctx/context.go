// Package ctx provides a request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for parameters, binding and
// responses:
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id, err := c.ParamUint("id")
//	    ...
//	    c.JSON(http.StatusOK, product)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/qcharged/product-service/pkg/bind"
	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/response"
	"github.com/qcharged/product-service/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Parameter errors ─────────────────────────────────────────────────────────

// ErrMissing marks a required parameter that was not supplied.
var ErrMissing = errors.New("is required")

// ParamError describes a path or query parameter that could not be used.
type ParamError struct {
	Name string
	Err  error
}

func (e *ParamError) Error() string { return fmt.Sprintf("parameter %s %v", e.Name, e.Err) }

func (e *ParamError) Unwrap() error { return e.Err }

// FieldError converts the parameter error for a validation response.
func (e *ParamError) FieldError() response.FieldError {
	msg := fmt.Sprintf("The %s parameter is invalid.", e.Name)
	if errors.Is(e.Err, ErrMissing) {
		msg = fmt.Sprintf("The %s parameter is required.", e.Name)
	}
	return response.FieldError{Field: e.Name, Message: msg}
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive integer path parameter such as an ID.
func (c *Context) ParamUint(key string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, &ParamError{Name: key, Err: errors.New("must be a positive integer")}
	}
	return uint(n), nil
}

// Query returns a query-string value, or "".
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// HasQuery reports whether key was present at all, even with an empty value.
func (c *Context) HasQuery(key string) bool {
	return c.R.URL.Query().Has(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryInt parses an integer query parameter, returning def when absent.
func (c *Context) QueryInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParamError{Name: key, Err: errors.New("must be an integer")}
	}
	return n, nil
}

// QueryBool parses a boolean query parameter, returning def when absent.
func (c *Context) QueryBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ParamError{Name: key, Err: errors.New("must be true or false")}
	}
	return b, nil
}

// QueryDecimal parses a required decimal query parameter.
func (c *Context) QueryDecimal(key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return decimal.Decimal{}, &ParamError{Name: key, Err: ErrMissing}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &ParamError{Name: key, Err: errors.New("must be a decimal number")}
	}
	return d, nil
}

// Method returns the HTTP method of the request.
func (c *Context) Method() string { return c.R.Method }

// Path returns the request URL path.
func (c *Context) Path() string { return c.R.URL.Path }

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes and validates the body into dest. On failure it writes
// a 400 response and returns false; the handler should return immediately.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.W, c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, response.TitleBadRequest, err.Error())
		return false
	}
	if len(errs) > 0 {
		c.ValidationError(FieldErrors(errs))
		return false
	}
	return true
}

// FieldErrors converts validation failures for a response body.
func FieldErrors(errs validate.Errors) []response.FieldError {
	out := make([]response.FieldError, len(errs))
	for i, fe := range errs {
		out[i] = response.FieldError{Field: fe.Field, Message: fe.Message}
	}
	return out
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// NoContent writes an empty 204.
func (c *Context) NoContent() {
	c.status = http.StatusNoContent
	response.NoContent(c.W)
}

// Error writes the uniform error body.
func (c *Context) Error(code int, title, message string) {
	c.status = code
	response.Error(c.W, c.R, code, title, message)
}

// ValidationError writes a 400 with field-level details.
func (c *Context) ValidationError(details []response.FieldError) {
	c.status = http.StatusBadRequest
	response.ValidationError(c.W, c.R, details)
}

// InternalError logs err and writes a 500 without exposing it.
func (c *Context) InternalError(err error) {
	c.Logger().Error("request failed", "error", err, "method", c.Method(), "path", c.Path())
	c.status = http.StatusInternalServerError
	response.Internal(c.W, c.R)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
