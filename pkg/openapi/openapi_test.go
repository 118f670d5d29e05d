package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/pkg/openapi"
)

func TestDocumentInfo(t *testing.T) {
	doc, err := openapi.Parse()
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Product Service API", doc.Info.Title)
	assert.Equal(t, "v1.0.0", doc.Info.Version)
	assert.Contains(t, doc.Paths, "/api/v1/products/{id}")
	assert.Contains(t, doc.Paths["/api/v1/products"], "post")
}

func TestHandlerServesDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	openapi.Handler()(rec, httptest.NewRequest(http.MethodGet, "/api-docs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	info := body["info"].(map[string]any)
	assert.Equal(t, "MIT License", info["license"].(map[string]any)["name"])
	assert.Equal(t, "Development Team", info["contact"].(map[string]any)["name"])
}
