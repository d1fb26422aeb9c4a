package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kozaktomas/name-that-face/internal/auth"
	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

// AccessHandler handles unlocking and status endpoints
type AccessHandler struct {
	controller *workflow.Controller
	hash       string
	messages   config.AuthMessages
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(cfg *config.Config, controller *workflow.Controller) *AccessHandler {
	return &AccessHandler{
		controller: controller,
		hash:       cfg.Auth.PassphraseHash,
		messages:   cfg.Policy.Auth,
	}
}

type unlockRequest struct {
	Passphrase string `json:"passphrase"`
}

// StatusResponse describes both controller axes and the pending alert.
type StatusResponse struct {
	Access  string          `json:"access"`
	Pending string          `json:"pending"`
	Alert   *workflow.Alert `json:"alert,omitempty"`
}

// Unlock checks the passphrase and unlocks the collection.
func (h *AccessHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	authenticator := auth.NewPassphrase(h.hash, auth.Given(req.Passphrase), h.messages)
	if err := h.controller.Unlock(r.Context(), authenticator); err != nil {
		respondWorkflowError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.status())
}

// Status returns the current access and pending state.
func (h *AccessHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.status())
}

// DismissAlert clears the current alert.
func (h *AccessHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	h.controller.DismissAlert()
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccessHandler) status() StatusResponse {
	resp := StatusResponse{
		Access:  h.controller.Access().String(),
		Pending: h.controller.PendingState().String(),
	}
	if alert, ok := h.controller.Alert(); ok {
		resp.Alert = &alert
	}
	return resp
}
