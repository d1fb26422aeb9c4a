package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/picker"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

// PendingHandler drives the add flow: import an image, name it, save or cancel.
type PendingHandler struct {
	controller *workflow.Controller
	policy     picker.Policy
}

// NewPendingHandler creates a new pending-face handler
func NewPendingHandler(controller *workflow.Controller, policy picker.Policy) *PendingHandler {
	return &PendingHandler{
		controller: controller,
		policy:     policy,
	}
}

// PendingResponse describes the pending-face slot.
type PendingResponse struct {
	State string `json:"state"`
	// ID is the provisional identifier; the saved face gets a new one.
	ID         *uuid.UUID `json:"id,omitempty"`
	ImageValid bool       `json:"image_valid"`
	// CanSave is evaluated for the ?name= query parameter.
	CanSave bool   `json:"can_save"`
	Message string `json:"message,omitempty"`
}

type confirmRequest struct {
	Name string `json:"name"`
}

// Import accepts a multipart upload in the "image" field and holds it as the pending face.
func (h *PendingHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondError(w, http.StatusBadRequest, "no image provided")
			return
		}
		respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	src := picker.Upload{Filename: header.Filename, Data: data, Policy: h.policy}
	if err := h.controller.Import(r.Context(), src); err != nil {
		respondWorkflowError(w, r, err)
		return
	}

	status := http.StatusCreated
	if h.controller.PendingState() == workflow.Idle {
		status = http.StatusOK
	}
	respondJSON(w, status, h.pending(""))
}

// Get returns the pending slot; ?name= evaluates whether saving is enabled.
func (h *PendingHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.pending(r.URL.Query().Get("name")))
}

// Confirm saves the pending face under the given name.
func (h *PendingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	saved, err := h.controller.Confirm(r.Context(), req.Name)
	if err != nil {
		respondWorkflowError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newFaceResponse(saved))
}

// Cancel discards the pending face.
func (h *PendingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.controller.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *PendingHandler) pending(name string) PendingResponse {
	resp := PendingResponse{State: h.controller.PendingState().String()}
	f, ok := h.controller.Pending()
	if !ok {
		return resp
	}
	resp.ID = &f.ID
	resp.ImageValid = h.controller.PendingImageValid()
	resp.CanSave = h.controller.CanSave(name)
	if !resp.ImageValid {
		resp.Message = "image not available"
	}
	return resp
}
