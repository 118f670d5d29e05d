// Package openapi embeds the OpenAPI 3 document for the REST API.
package openapi

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

// JSON contains the embedded OpenAPI document.
//
//go:embed openapi.json
var JSON []byte

// Document is the subset of the document callers inspect.
type Document struct {
	OpenAPI string `json:"openapi"`
	Info    struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	Paths map[string]map[string]json.RawMessage `json:"paths"`
}

// Parse decodes the embedded document.
func Parse() (Document, error) {
	var doc Document
	err := json.Unmarshal(JSON, &doc)
	return doc, err
}

// Handler serves the document.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write(JSON) //nolint:errcheck
	}
}
