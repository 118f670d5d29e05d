package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// RunFile executes every scenario in path, in order, against handler.
// A failing step does not stop the ones after it.
func RunFile(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	scenarios, err := LoadFile(path)
	if err != nil {
		t.Fatalf("%v", err)
	}

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			Run(t, handler, s)
		})
	}
}

// Run fires a single scenario and asserts its status and body.
func Run(t *testing.T, handler http.Handler, s *Scenario) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if len(s.RequestBody) > 0 {
		body = bytes.NewReader(s.RequestBody)
	}

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertJSONBody(t, s, s.ExpectedBody, rec.Body.Bytes())
	return rec
}
