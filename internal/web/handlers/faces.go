package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/mapview"
	"github.com/kozaktomas/name-that-face/internal/observability"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

// FacesHandler serves the saved collection
type FacesHandler struct {
	controller *workflow.Controller
	thumbs     *lru.Cache[uuid.UUID, []byte]
}

// NewFacesHandler creates a new faces handler with a thumbnail cache of the given size.
func NewFacesHandler(controller *workflow.Controller, cacheSize int) *FacesHandler {
	if cacheSize <= 0 {
		cacheSize = constants.ThumbnailCacheSize
	}
	thumbs, err := lru.New[uuid.UUID, []byte](cacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &FacesHandler{
		controller: controller,
		thumbs:     thumbs,
	}
}

// FaceResponse is the list representation of a face. Image bytes are served separately.
type FaceResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	ImageURL  string    `json:"image_url"`
	ThumbURL  string    `json:"thumb_url"`
}

// FaceDetailResponse adds the map view to FaceResponse.
type FaceDetailResponse struct {
	FaceResponse
	Map mapview.View `json:"map"`
}

func newFaceResponse(f face.Face) FaceResponse {
	base := "/api/v1/faces/" + f.ID.String()
	return FaceResponse{
		ID:        f.ID,
		Name:      f.Name,
		Latitude:  f.Latitude(),
		Longitude: f.Longitude(),
		ImageURL:  base + "/image",
		ThumbURL:  base + "/thumb",
	}
}

// List returns all saved faces ordered by name.
func (h *FacesHandler) List(w http.ResponseWriter, r *http.Request) {
	faces, err := h.controller.Faces()
	if err != nil {
		respondWorkflowError(w, r, err)
		return
	}

	resp := make([]FaceResponse, 0, len(faces))
	for _, f := range faces {
		resp = append(resp, newFaceResponse(f))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get returns a single face with its map view.
func (h *FacesHandler) Get(w http.ResponseWriter, r *http.Request) {
	f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, FaceDetailResponse{
		FaceResponse: newFaceResponse(f),
		Map:          mapview.ForFace(f),
	})
}

// Image serves the original image bytes.
func (h *FacesHandler) Image(w http.ResponseWriter, r *http.Request) {
	f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(f.Image))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(f.Image)
}

// Thumbnail serves a JPEG thumbnail, generated on first request and cached.
func (h *FacesHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	f, ok := h.lookup(w, r)
	if !ok {
		return
	}

	thumb, cached := h.thumbs.Get(f.ID)
	if cached {
		observability.ThumbnailCache.WithLabelValues("hit").Inc()
	} else {
		observability.ThumbnailCache.WithLabelValues("miss").Inc()
		var err error
		thumb, err = face.Thumbnail(f.Image, constants.ThumbnailSize)
		if err != nil {
			log.Printf("Thumbnail for face %s: %v", f.ID, err)
			respondError(w, http.StatusUnprocessableEntity, "image not available")
			return
		}
		h.thumbs.Add(f.ID, thumb)
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(thumb)
}

// Delete removes a face immediately.
func (h *FacesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := h.controller.Delete(r.Context(), f); err != nil {
		respondWorkflowError(w, r, err)
		return
	}
	h.thumbs.Remove(f.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *FacesHandler) lookup(w http.ResponseWriter, r *http.Request) (face.Face, bool) {
	id, ok := faceIDParam(w, r)
	if !ok {
		return face.Face{}, false
	}
	f, err := h.controller.Face(id)
	if err != nil {
		respondWorkflowError(w, r, err)
		return face.Face{}, false
	}
	return f, true
}
