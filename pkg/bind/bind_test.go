package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/config"
	"github.com/qcharged/product-service/pkg/bind"
)

type input struct {
	Name string `json:"name" validate:"required"`
}

func request(body string) (*httptest.ResponseRecorder, *http.Request) {
	return httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSONValid(t *testing.T) {
	w, r := request(`{"name":"Widget"}`)
	var in input
	errs, err := bind.JSON(w, r, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "Widget", in.Name)
}

func TestJSONValidationFailure(t *testing.T) {
	w, r := request(`{"name":""}`)
	var in input
	errs, err := bind.JSON(w, r, &in)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestJSONMalformed(t *testing.T) {
	for _, body := range []string{`{"name":`, ``, `{"name":"a"} {"name":"b"}`} {
		w, r := request(body)
		var in input
		_, err := bind.JSON(w, r, &in)
		assert.Error(t, err, body)
	}
}

func TestJSONTooLarge(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "16")
	defer config.Set("MAX_BODY_BYTES", "")

	w, r := request(`{"name":"` + strings.Repeat("a", 64) + `"}`)
	var in input
	_, err := bind.JSON(w, r, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
