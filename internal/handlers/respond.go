package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/storewatch/storewatch-api/internal/apperr"
)

type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps error kinds to HTTP status codes. Full error detail is
// only exposed when development mode is on.
func respondError(w http.ResponseWriter, err error, development bool) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	switch apperr.KindOf(err) {
	case apperr.NotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperr.Parse:
		status = http.StatusBadRequest
		message = err.Error()
	}

	resp := errorResponse{Error: true, Message: message}
	if development && status == http.StatusInternalServerError {
		resp.Details = err.Error()
	}
	respondJSON(w, status, resp)
}

// NotFound handles unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, errorResponse{
		Error:   true,
		Message: "Resource not found",
	})
}
