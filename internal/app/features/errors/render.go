// internal/app/features/errors/render.go

// Package errors renders the API's error responses. Every failure goes
// out as the same JSON envelope so clients never have to sniff the
// body shape.
package errors

import (
	"encoding/json"
	"net/http"
)

// envelope is the wire shape of every error response.
type envelope struct {
	Error string `json:"error"`
}

// Render writes an error response with the given status and message.
func Render(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: message})
}

// RenderUnauthorized writes a 401 for requests with no valid session.
func RenderUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "sign in required"
	}
	Render(w, http.StatusUnauthorized, message)
}

// RenderForbidden writes a 403 for signed-in users without access.
func RenderForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "you do not have access to this resource"
	}
	Render(w, http.StatusForbidden, message)
}

// RenderNotFound writes a 404.
func RenderNotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "not found"
	}
	Render(w, http.StatusNotFound, message)
}

// RenderConflict writes a 409 for state conflicts (double entry,
// already-paid due, duplicate email).
func RenderConflict(w http.ResponseWriter, message string) {
	Render(w, http.StatusConflict, message)
}

// RenderUnprocessable writes a 422 for validation failures.
func RenderUnprocessable(w http.ResponseWriter, message string) {
	Render(w, http.StatusUnprocessableEntity, message)
}
