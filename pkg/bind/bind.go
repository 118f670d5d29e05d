// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/qcharged/product-service/config"
	"github.com/qcharged/product-service/pkg/validate"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body into dest and validates it.
//
// A malformed or oversized body yields (nil, err). A well-formed body that
// breaks a validation rule yields (errs, nil).
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}) (validate.Errors, error) {
	limit := config.MaxBodyBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrEmptyBody
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		default:
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: trailing data after document")
	}

	if errs := validate.Struct(dest); len(errs) > 0 {
		return errs, nil
	}
	return nil, nil
}
