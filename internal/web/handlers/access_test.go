package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/database/mock"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

func TestAccessHandler_Unlock_Success(t *testing.T) {
	c := workflow.New(mock.NewMockFaceStore(), nil)
	h := NewAccessHandler(testConfig(t), c)

	recorder := httptest.NewRecorder()
	h.Unlock(recorder, jsonRequest(t, http.MethodPost, "/api/v1/unlock", map[string]string{"passphrase": testPassphrase}))

	assertStatusCode(t, recorder, http.StatusOK)
	var resp StatusResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Access != "unlocked" {
		t.Errorf("expected access 'unlocked', got '%s'", resp.Access)
	}
	if c.Access() != workflow.Unlocked {
		t.Error("controller should be unlocked")
	}
}

func TestAccessHandler_Unlock_WrongPassphrase(t *testing.T) {
	cfg := testConfig(t)
	c := workflow.New(mock.NewMockFaceStore(), nil)
	h := NewAccessHandler(cfg, c)

	recorder := httptest.NewRecorder()
	h.Unlock(recorder, jsonRequest(t, http.MethodPost, "/api/v1/unlock", map[string]string{"passphrase": "guess"}))

	assertStatusCode(t, recorder, http.StatusUnauthorized)
	assertJSONError(t, recorder, cfg.Policy.Auth.Failed)
	if c.Access() != workflow.Locked {
		t.Error("controller should stay locked")
	}

	// the alert is visible through the status endpoint until dismissed
	recorder = httptest.NewRecorder()
	h.Status(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
	var resp StatusResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Alert == nil || resp.Alert.Message != cfg.Policy.Auth.Failed {
		t.Errorf("expected alert with failure reason, got %+v", resp.Alert)
	}

	recorder = httptest.NewRecorder()
	h.DismissAlert(recorder, httptest.NewRequest(http.MethodDelete, "/api/v1/alert", nil))
	assertStatusCode(t, recorder, http.StatusNoContent)
	if _, ok := c.Alert(); ok {
		t.Error("alert should be dismissed")
	}
}

func TestAccessHandler_Unlock_NoHashConfigured(t *testing.T) {
	cfg := &config.Config{Policy: config.LoadPolicy()}
	h := NewAccessHandler(cfg, workflow.New(mock.NewMockFaceStore(), nil))

	recorder := httptest.NewRecorder()
	h.Unlock(recorder, jsonRequest(t, http.MethodPost, "/api/v1/unlock", map[string]string{"passphrase": "anything"}))

	assertStatusCode(t, recorder, http.StatusUnauthorized)
	assertJSONError(t, recorder, cfg.Policy.Auth.Unavailable)
}

func TestAccessHandler_Unlock_InvalidBody(t *testing.T) {
	h := NewAccessHandler(testConfig(t), workflow.New(mock.NewMockFaceStore(), nil))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/unlock", strings.NewReader("{not json"))
	h.Unlock(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, errInvalidRequestBody)
}

func TestAccessHandler_Status_Locked(t *testing.T) {
	h := NewAccessHandler(testConfig(t), workflow.New(mock.NewMockFaceStore(), nil))

	recorder := httptest.NewRecorder()
	h.Status(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	var resp StatusResponse
	parseJSONResponse(t, recorder, &resp)
	if resp.Access != "locked" || resp.Pending != "idle" || resp.Alert != nil {
		t.Errorf("unexpected status %+v", resp)
	}
}
