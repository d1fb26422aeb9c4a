// Package workflow orchestrates the face flows: unlock, import -> name -> save,
// browse and delete. It owns the transient state (lock flag, pending face,
// current snapshot, alert) and talks to the face store through database.FaceWriter.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/observability"
)

const authAlertTitle = "Authentication error"

// Controller mediates between the face store and the user-facing surfaces.
type Controller struct {
	store    database.FaceWriter
	location LocationProvider

	mu           sync.Mutex
	access       AccessState
	pendingState PendingState
	pending      *face.Face
	pendingValid bool // pending image decodes
	faces        []face.Face
	alert        *Alert
}

// New creates a locked controller. location may be nil when no location
// collaborator exists; saved faces then never carry coordinates.
func New(store database.FaceWriter, location LocationProvider) *Controller {
	return &Controller{
		store:    store,
		location: location,
	}
}

// Access returns the current lock state.
func (c *Controller) Access() AccessState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access
}

// Unlock runs the authenticator. On success the controller unlocks for the rest
// of the process lifetime and loads the face snapshot. On failure it stays
// locked, raises an alert carrying the reason and returns an *AuthenticationError.
func (c *Controller) Unlock(ctx context.Context, auth Authenticator) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.access == Unlocked {
		return nil
	}

	if auth == nil {
		return c.authFailed(&AuthenticationError{Reason: "no authentication method is available"})
	}

	if err := auth.Authenticate(ctx, constants.UnlockReason); err != nil {
		var authErr *AuthenticationError
		if !errors.As(err, &authErr) {
			authErr = &AuthenticationError{Reason: err.Error(), Err: err}
		}
		return c.authFailed(authErr)
	}

	observability.UnlockAttempts.WithLabelValues("success").Inc()
	c.access = Unlocked
	c.alert = nil
	return c.refreshLocked(ctx)
}

func (c *Controller) authFailed(err *AuthenticationError) error {
	observability.UnlockAttempts.WithLabelValues("failure").Inc()
	c.alert = &Alert{Title: authAlertTitle, Message: err.Reason}
	return err
}

// Alert returns the alert waiting to be shown, if any.
func (c *Controller) Alert() (Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alert == nil {
		return Alert{}, false
	}
	return *c.alert, true
}

// DismissAlert clears the current alert.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert = nil
}

// PendingState returns the state of the pending-face slot.
func (c *Controller) PendingState() PendingState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingState
}

// Pending returns a copy of the pending face while one awaits a name.
func (c *Controller) Pending() (face.Face, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingState != AwaitingName || c.pending == nil {
		return face.Face{}, false
	}
	return *c.pending, true
}

// PendingImageValid reports whether the pending image decodes. When it does
// not, the add flow shows "image not available" and never enables saving.
func (c *Controller) PendingImageValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingState == AwaitingName && c.pendingValid
}

// Import awaits bytes from the image source and, when it yields data, holds
// them as the pending face. An empty result silently returns to Idle. The
// controller lock is released while the transfer is in flight.
func (c *Controller) Import(ctx context.Context, src ImageSource) error {
	c.mu.Lock()
	if c.access != Unlocked {
		c.mu.Unlock()
		return ErrLocked
	}
	if c.pendingState != Idle {
		c.mu.Unlock()
		return ErrBusy
	}
	c.pendingState = AwaitingImage
	c.mu.Unlock()

	data, err := src.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		observability.ImagesImported.WithLabelValues("error").Inc()
		c.pendingState = Idle
		return fmt.Errorf("load image: %w", err)
	}
	if len(data) == 0 {
		observability.ImagesImported.WithLabelValues("empty").Inc()
		c.pendingState = Idle
		return nil
	}

	observability.ImagesImported.WithLabelValues("pending").Inc()
	pending := face.NewPending(data)
	c.pending = &pending
	c.pendingValid = face.IsImage(data)
	c.pendingState = AwaitingName
	return nil
}

// CanSave reports whether the save action is enabled for the given name input.
func (c *Controller) CanSave(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSaveLocked(name)
}

func (c *Controller) canSaveLocked(name string) bool {
	return c.pendingState == AwaitingName && c.pendingValid && face.IsValidName(name)
}

// Confirm saves the pending face under the trimmed name. Coordinates are taken
// from the location collaborator at this moment, best-effort: any failure or
// missing fix saves the face without a location. On a store failure the
// pending face is kept so the user can retry. Once the insert succeeds Confirm
// reports success even if reloading the snapshot fails.
func (c *Controller) Confirm(ctx context.Context, name string) (face.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.access != Unlocked {
		return face.Face{}, ErrLocked
	}
	if c.pendingState != AwaitingName || c.pending == nil {
		return face.Face{}, ErrNoPendingFace
	}
	if !c.canSaveLocked(name) {
		return face.Face{}, ErrSaveDisabled
	}

	saved := face.New(c.pending.Image, name, c.currentLocation(ctx))
	if err := c.store.Insert(ctx, saved); err != nil {
		observability.StorageErrors.WithLabelValues("insert").Inc()
		return face.Face{}, database.Wrap("insert", err)
	}
	observability.FacesSaved.Inc()

	c.clearPendingLocked()
	if err := c.refreshLocked(ctx); err != nil {
		// the face is stored; keep the snapshot usable until the next refresh
		log.Printf("Warning: face %s saved but the list could not be reloaded: %v", saved.ID, err)
		i, _ := slices.BinarySearchFunc(c.faces, saved, face.Compare)
		c.faces = slices.Insert(c.faces, i, saved)
		observability.StoredFaces.Set(float64(len(c.faces)))
	}
	return saved, nil
}

func (c *Controller) currentLocation(ctx context.Context) *face.Coordinates {
	if c.location == nil {
		return nil
	}
	coords, err := c.location.CurrentLocation(ctx)
	if err != nil || coords == nil || !coords.Valid() {
		return nil
	}
	return coords
}

// Cancel discards the pending face without saving it. A transfer already in
// flight cannot be cancelled; Cancel leaves it alone.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingState == AwaitingName {
		c.clearPendingLocked()
	}
}

func (c *Controller) clearPendingLocked() {
	c.pending = nil
	c.pendingValid = false
	c.pendingState = Idle
}

// Faces returns the current snapshot ordered by name.
func (c *Controller) Faces() ([]face.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.access != Unlocked {
		return nil, ErrLocked
	}
	out := make([]face.Face, len(c.faces))
	copy(out, c.faces)
	return out, nil
}

// Face looks up one face of the snapshot for the detail view.
func (c *Controller) Face(id uuid.UUID) (face.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.access != Unlocked {
		return face.Face{}, ErrLocked
	}
	for _, f := range c.faces {
		if f.ID == id {
			return f, nil
		}
	}
	return face.Face{}, ErrNotFound
}

// Delete removes the face from the store immediately and refreshes the snapshot.
func (c *Controller) Delete(ctx context.Context, f face.Face) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.access != Unlocked {
		return ErrLocked
	}
	if err := c.store.Delete(ctx, f.ID); err != nil {
		observability.StorageErrors.WithLabelValues("delete").Inc()
		return database.Wrap("delete", err)
	}
	observability.FacesDeleted.Inc()
	if err := c.refreshLocked(ctx); err != nil {
		log.Printf("Warning: face %s deleted but the list could not be reloaded: %v", f.ID, err)
		c.faces = slices.DeleteFunc(c.faces, func(x face.Face) bool { return x.ID == f.ID })
		observability.StoredFaces.Set(float64(len(c.faces)))
	}
	return nil
}

// Refresh re-fetches the snapshot from the store.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.access != Unlocked {
		return ErrLocked
	}
	return c.refreshLocked(ctx)
}

func (c *Controller) refreshLocked(ctx context.Context) error {
	faces, err := c.store.List(ctx)
	if err != nil {
		observability.StorageErrors.WithLabelValues("list").Inc()
		return database.Wrap("list", err)
	}
	c.faces = faces
	observability.StoredFaces.Set(float64(len(faces)))
	return nil
}
