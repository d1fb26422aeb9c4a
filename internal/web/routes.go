package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/picker"
	"github.com/kozaktomas/name-that-face/internal/web/handlers"
	"github.com/kozaktomas/name-that-face/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	// Create handlers
	accessHandler := handlers.NewAccessHandler(s.config, s.controller)
	facesHandler := handlers.NewFacesHandler(s.controller, constants.ThumbnailCacheSize)
	pendingHandler := handlers.NewPendingHandler(s.controller, picker.NewPolicy(s.config.Policy.Picker))

	// Health check and metrics (no unlock required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/unlock", accessHandler.Unlock)
		r.Get("/status", accessHandler.Status)
		r.Delete("/alert", accessHandler.DismissAlert)

		// Everything else requires an unlocked collection
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUnlocked(s.controller))

			// Faces
			r.Get("/faces", facesHandler.List)
			r.Get("/faces/{id}", facesHandler.Get)
			r.Get("/faces/{id}/image", facesHandler.Image)
			r.Get("/faces/{id}/thumb", facesHandler.Thumbnail)
			r.Delete("/faces/{id}", facesHandler.Delete)

			// Add flow
			r.Post("/pending", pendingHandler.Import)
			r.Get("/pending", pendingHandler.Get)
			r.Post("/pending/confirm", pendingHandler.Confirm)
			r.Delete("/pending", pendingHandler.Cancel)
		})
	})

	s.router.Get("/", serveIndex)
}

// serveIndex returns a placeholder page pointing at the API.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Name That Face</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        a { color: #00d9ff; }
        code { background: #2a2a3e; padding: 2px 8px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Name That Face</h1>
        <p>Unlock with <code>POST /api/v1/unlock</code>, then browse <a href="/api/v1/faces">/api/v1/faces</a>.</p>
        <p>Status: <a href="/api/v1/status">/api/v1/status</a></p>
    </div>
</body>
</html>`))
}
