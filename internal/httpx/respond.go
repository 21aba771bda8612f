// Package httpx provides small helpers for writing JSON over HTTP.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope every failed request body uses.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an ErrorResponse with the given status code and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// FieldErrors sends a validation failure with per-field messages.
func FieldErrors(w http.ResponseWriter, status int, message string, fields map[string]string) {
	JSON(w, status, ErrorResponse{Error: message, Fields: fields})
}

// DecodeJSON decodes the JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
