package middleware

import (
	"net/http"

	"github.com/kozaktomas/name-that-face/internal/workflow"
)

// AccessChecker reports the lock state of the collection.
type AccessChecker interface {
	Access() workflow.AccessState
}

// RequireUnlocked is middleware that rejects requests with 423 Locked until
// the collection has been unlocked.
func RequireUnlocked(ac AccessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ac.Access() != workflow.Unlocked {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error": "locked"}`, http.StatusLocked)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
