package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/picker"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

func TestRespondJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, http.StatusCreated, map[string]int{"count": 3})

	assertStatusCode(t, recorder, http.StatusCreated)
	assertContentType(t, recorder, "application/json")

	var result map[string]int
	parseJSONResponse(t, recorder, &result)
	if result["count"] != 3 {
		t.Errorf("expected count 3, got %d", result["count"])
	}
}

func TestRespondJSON_NilData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, http.StatusOK, nil)

	if recorder.Body.Len() != 0 {
		t.Errorf("expected empty body for nil data, got '%s'", recorder.Body.String())
	}
}

func TestRespondJSON_EmptySlice(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondJSON(recorder, http.StatusOK, []FaceResponse{})

	if recorder.Body.String() != "[]\n" {
		t.Errorf("expected '[]', got '%s'", recorder.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusBadRequest, "something went wrong")

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertContentType(t, recorder, "application/json")
	assertJSONError(t, recorder, "something went wrong")
}

func TestRespondWorkflowError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"locked", workflow.ErrLocked, http.StatusLocked, workflow.ErrLocked.Error()},
		{"not found", workflow.ErrNotFound, http.StatusNotFound, workflow.ErrNotFound.Error()},
		{"busy", workflow.ErrBusy, http.StatusConflict, workflow.ErrBusy.Error()},
		{"no pending", workflow.ErrNoPendingFace, http.StatusConflict, workflow.ErrNoPendingFace.Error()},
		{"save disabled", workflow.ErrSaveDisabled, http.StatusUnprocessableEntity, workflow.ErrSaveDisabled.Error()},
		{"screenshot", fmt.Errorf("load image: %w", picker.ErrExcluded), http.StatusUnprocessableEntity, "load image: " + picker.ErrExcluded.Error()},
		{"unsupported", picker.ErrUnsupportedType, http.StatusUnsupportedMediaType, picker.ErrUnsupportedType.Error()},
		{"auth", &workflow.AuthenticationError{Reason: "nope"}, http.StatusUnauthorized, "nope"},
		{"storage", &database.StorageError{Op: "list", Err: errors.New("db gone")}, http.StatusInternalServerError, "storage error"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondWorkflowError(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/faces", nil), tc.err)

			assertStatusCode(t, recorder, tc.wantStatus)
			assertJSONError(t, recorder, tc.wantError)
		})
	}
}

func TestFaceIDParam(t *testing.T) {
	id := uuid.New()

	recorder := httptest.NewRecorder()
	req := requestWithChiParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": id.String()})
	got, ok := faceIDParam(recorder, req)
	if !ok || got != id {
		t.Errorf("faceIDParam() = %v, %v; want %v, true", got, ok, id)
	}

	recorder = httptest.NewRecorder()
	req = requestWithChiParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "not-a-uuid"})
	if _, ok := faceIDParam(recorder, req); ok {
		t.Error("expected invalid id to be rejected")
	}
	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "invalid face id")
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("/faces\r\nX-Injected: 1"); got != "/facesX-Injected: 1" {
		t.Errorf("sanitizeForLog() = %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	for _, method := range []string{"GET", "POST", "HEAD"} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/health", nil)
			recorder := httptest.NewRecorder()

			HealthCheck(recorder, req)

			assertStatusCode(t, recorder, http.StatusOK)
			assertContentType(t, recorder, "application/json")
		})
	}

	recorder := httptest.NewRecorder()
	HealthCheck(recorder, httptest.NewRequest("GET", "/health", nil))
	var result map[string]string
	parseJSONResponse(t, recorder, &result)
	if result["status"] != "ok" {
		t.Errorf("expected status 'ok', got '%s'", result["status"])
	}
}
