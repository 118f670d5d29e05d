package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/qcharged/product-service/pkg/ctx"
)

// HealthController reports readiness from a check such as the database ping.
type HealthController struct {
	check   func(ctx context.Context) error
	timeout time.Duration
}

func NewHealthController(check func(ctx context.Context) error) *HealthController {
	return &HealthController{check: check, timeout: 2 * time.Second}
}

type healthBody struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Show answers 200 {"status":"UP"} or 503 {"status":"DOWN"}.
//
//	GET /health
func (hc *HealthController) Show(c *ctx.Context) {
	if hc.check == nil {
		c.JSON(http.StatusOK, healthBody{Status: "UP"})
		return
	}

	pctx, cancel := context.WithTimeout(c.Context(), hc.timeout)
	defer cancel()

	if err := hc.check(pctx); err != nil {
		c.Logger().Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthBody{Status: "DOWN", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, healthBody{Status: "UP"})
}
