// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across handlers.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Message is the {"message": ...} envelope used for status responses.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON encodes v as a JSON response with the given status code. Encoding
// errors are ignored; at that point the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a {"message": ...} response with the given status code.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Message{Message: msg})
}

// DecodeJSON decodes the request body into v and closes the body.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
