// Package httpx writes the JSON answers of the /api and /jobs routes. Failures
// use RFC 7807 problem documents.
package httpx

import (
	"encoding/json"
	"net/http"
)

const problemContentType = "application/problem+json"

// ProblemDetail is an RFC 7807 problem document.
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON writes data with status. Answers are per user, so nothing is cached.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, "application/json", status, data)
}

// Problem writes a problem document. Detail must be safe to show.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	write(w, problemContentType, status, ProblemDetail{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

func write(w http.ResponseWriter, contentType string, status int, data any) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
