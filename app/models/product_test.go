package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/app/models"
)

func TestProductJSONShape(t *testing.T) {
	p := models.Product{ID: 3, Name: "Widget", NameKey: "widget", Description: "A widget", Price: decimal.RequireFromString("9.99")}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 9.99, got["price"], "price is a JSON number")
	assert.Equal(t, float64(3), got["id"])
	assert.NotContains(t, got, "nameKey")
	assert.NotContains(t, got, "NameKey")
	assert.Contains(t, got, "createdAt")
}

func TestInputNormalizeAndApply(t *testing.T) {
	price := decimal.RequireFromString("19.995")
	in := models.ProductInput{Name: "  Gadget ", Price: &price}
	in.Normalize()

	assert.Equal(t, "Gadget", in.Name)
	assert.Equal(t, "20", in.Price.String())

	p := models.Product{ID: 7, Name: "Widget", Description: "A widget"}
	in.ApplyTo(&p)
	assert.Equal(t, uint(7), p.ID)
	assert.Equal(t, "Gadget", p.Name)
	assert.Equal(t, "", p.Description)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("20.00")))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "widget", models.NameKey(" WIDGET "))
	assert.Equal(t, models.NameKey("Widget"), models.NameKey("wIDGET"))
}

func TestBeforeSaveSetsNameKey(t *testing.T) {
	p := models.Product{Name: "Test Product"}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "test product", p.NameKey)
}

func TestBeforeSaveFoldsNonASCII(t *testing.T) {
	p := models.Product{Name: " ÉCLAIR ", Description: "Crème PÂTISSIÈRE"}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "éclair", p.NameKey)
	assert.Equal(t, "crème pâtissière", p.DescriptionKey)
}
