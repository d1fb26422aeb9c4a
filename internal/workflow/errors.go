package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrLocked is returned by main-flow operations before a successful unlock.
	ErrLocked = errors.New("face collection is locked")
	// ErrBusy is returned when an import starts while another pending face exists.
	ErrBusy = errors.New("another face is already pending")
	// ErrNoPendingFace is returned when confirming without a pending face.
	ErrNoPendingFace = errors.New("no pending face")
	// ErrSaveDisabled is returned when confirming while the save action is disabled:
	// the image does not decode or the name is too short.
	ErrSaveDisabled = errors.New("save is disabled: a decodable image and a name of at least two characters are required")
	// ErrNotFound is returned when a face is not part of the current snapshot.
	ErrNotFound = errors.New("face not found")
)

// AuthenticationError reports a failed or unavailable identity check.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
