// Package testkit provides helpers for API tests: a throwaway SQLite
// database and a JSON-scenario runner.
//
// A scenario file holds an ordered array of request/response steps that
// share state, so later steps can read what earlier ones created:
//
//	[
//	  {"name": "create", "requestMethod": "POST", "requestUrl": "/api/v1/products",
//	   "requestBody": {"name": "Widget", "price": 9.99},
//	   "expectedCode": 201, "expectedBody": {"id": 1, "name": "Widget", ...},
//	   "ignoreFields": ["createdAt", "updatedAt"]}
//	]
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    k, err := kernel.NewHTTPKernel(deps)
//	    require.NoError(t, err)
//	    testkit.RunFile(t, k.Handler(), "testdata/products.json")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario describes one request and the response expected for it.
type Scenario struct {
	Name string `json:"name"`

	RequestMethod string            `json:"requestMethod"` // GET, POST, PUT, DELETE
	RequestURL    string            `json:"requestUrl"`    // e.g. /api/v1/products/1
	RequestBody   json.RawMessage   `json:"requestBody"`
	Headers       map[string]string `json:"headers"`

	ExpectedCode int             `json:"expectedCode"`
	ExpectedBody json.RawMessage `json:"expectedBody"`

	// IgnoreFields names object keys dropped from both bodies before
	// comparing, at any depth (timestamps, generated IDs).
	IgnoreFields []string `json:"ignoreFields"`
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// LoadFile reads and validates an array of scenarios.
func LoadFile(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	for i, s := range scenarios {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: scenario %d in %q: %w", i, abs, err)
		}
	}
	return scenarios, nil
}
