package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vocabmaster/internal/repository"
	"vocabmaster/internal/service"
)

// statusForError maps core error kinds to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateWord),
		errors.Is(err, service.ErrSessionComplete),
		errors.Is(err, service.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidArgument),
		errors.Is(err, service.ErrEmptyWordSet),
		errors.Is(err, service.ErrWrongMode),
		errors.Is(err, service.ErrLibraryFull):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes a JSON error body. Internal errors are
// logged with detail but reported to the client generically.
func respondWithError(w http.ResponseWriter, err error, logMsg string) {
	status := statusForError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		if logMsg == "" {
			logMsg = "internal error"
		}
		log.Printf("%s: %v", logMsg, err)
		message = "internal server error"
	}

	respondJSON(w, status, map[string]string{"error": message})
}

// respondJSON writes v as a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
