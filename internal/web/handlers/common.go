package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/picker"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondWorkflowError maps controller and collaborator errors to HTTP statuses.
// Storage failures are logged and reported without their details.
func respondWorkflowError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *workflow.AuthenticationError
	switch {
	case errors.As(err, &authErr):
		respondError(w, http.StatusUnauthorized, authErr.Reason)
	case errors.Is(err, workflow.ErrLocked):
		respondError(w, http.StatusLocked, err.Error())
	case errors.Is(err, workflow.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrBusy), errors.Is(err, workflow.ErrNoPendingFace):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrSaveDisabled), errors.Is(err, picker.ErrExcluded):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, picker.ErrUnsupportedType):
		respondError(w, http.StatusUnsupportedMediaType, err.Error())
	case database.IsStorageError(err):
		log.Printf("%s %s: %v", r.Method, sanitizeForLog(r.URL.Path), err)
		respondError(w, http.StatusInternalServerError, "storage error")
	default:
		log.Printf("%s %s: %v", r.Method, sanitizeForLog(r.URL.Path), err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// faceIDParam parses the {id} URL parameter. It writes a 400 response and
// returns false when the value is not a UUID.
func faceIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid face id")
		return uuid.Nil, false
	}
	return id, true
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
