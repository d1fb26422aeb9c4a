package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kozaktomas/name-that-face/internal/workflow"
)

type fixedAccess workflow.AccessState

func (f fixedAccess) Access() workflow.AccessState { return workflow.AccessState(f) }

func TestRequireUnlocked(t *testing.T) {
	tests := []struct {
		name       string
		state      workflow.AccessState
		wantStatus int
		wantCalled bool
	}{
		{"locked", workflow.Locked, http.StatusLocked, false},
		{"unlocked", workflow.Unlocked, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			recorder := httptest.NewRecorder()
			RequireUnlocked(fixedAccess(tt.state))(next).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/faces", nil))

			if recorder.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}
			if called != tt.wantCalled {
				t.Errorf("next called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}
