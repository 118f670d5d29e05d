package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qcharged/product-service/app/controllers"
	"github.com/qcharged/product-service/pkg/ctx"
)

func TestHealthShow(t *testing.T) {
	cases := []struct {
		name  string
		check func(context.Context) error
		code  int
		body  string
	}{
		{"no check", nil, http.StatusOK, `{"status":"UP"}`},
		{"up", func(context.Context) error { return nil }, http.StatusOK, `{"status":"UP"}`},
		{"down", func(context.Context) error { return errors.New("sql: database is closed") },
			http.StatusServiceUnavailable, `{"status":"DOWN","error":"sql: database is closed"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := controllers.NewHealthController(tc.check)
			rec := httptest.NewRecorder()
			ctx.Wrap(h.Show)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}
