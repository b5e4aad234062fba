// Package response provides helpers for writing consistent HTTP responses.
//
// JSON endpoints share one error envelope; HTML endpoints share one
// content type and status handling. Centralising both keeps handlers
// down to "compute, then write".
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a snapshot, an outcome…).
// Error responses always look like:
//
//	{ "status": "error", "error": "no mount found with id: 01J..." }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteHTML runs render into a buffer first, so a render failure can
// still be reported as a 500 instead of a half-written page.
func WriteHTML(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// GeneralError wraps any Go error into our standard Response shape.
//
//	response.WriteJSON(w, http.StatusInternalServerError,
//	    response.GeneralError(err))
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationMessage turns each FieldError into a plain English sentence
// and joins them with ", ".
//
// Example output:
//
//	field ID is required, field Age is invalid
func ValidationMessage(errs validator.ValidationErrors) string {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return strings.Join(errMessages, ", ")
}
