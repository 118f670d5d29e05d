// Package response writes JSON bodies, including the uniform error body
// every endpoint uses:
//
//	{"timestamp":"…","status":404,"error":"Product Not Found","message":"…","path":"/api/v1/products/9"}
package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the uniform error payload.
type ErrorBody struct {
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Error     string       `json:"error"`
	Message   string       `json:"message,omitempty"`
	Path      string       `json:"path,omitempty"`
	Details   []FieldError `json:"details,omitempty"`
}

// Standard error titles.
const (
	TitleValidationFailed = "Validation Failed"
	TitleBadRequest       = "Bad Request"
	TitleNotFound         = "Not Found"
	TitleMethodNotAllowed = "Method Not Allowed"
	TitleTooManyRequests  = "Too Many Requests"
	TitleInternal         = "Internal Server Error"
)

// now is swapped in tests.
var now = time.Now

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes the uniform error body.
func Error(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	write(w, r, ErrorBody{Status: status, Error: title, Message: message})
}

// ValidationError writes a 400 carrying field-level details.
func ValidationError(w http.ResponseWriter, r *http.Request, details []FieldError) {
	write(w, r, ErrorBody{
		Status:  http.StatusBadRequest,
		Error:   TitleValidationFailed,
		Message: "Request validation failed",
		Details: details,
	})
}

// Internal writes a 500 without leaking the underlying error.
func Internal(w http.ResponseWriter, r *http.Request) {
	Error(w, r, http.StatusInternalServerError, TitleInternal, "An unexpected error occurred")
}

func write(w http.ResponseWriter, r *http.Request, body ErrorBody) {
	body.Timestamp = now().UTC()
	if r != nil {
		body.Path = r.URL.Path
	}
	JSON(w, body.Status, body)
}
