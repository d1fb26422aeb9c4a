package workflow

import (
	"context"

	"github.com/kozaktomas/name-that-face/internal/face"
)

// ImageSource yields raw image bytes. A nil or empty result means the user
// picked nothing usable.
type ImageSource interface {
	Load(ctx context.Context) ([]byte, error)
}

// ImageSourceFunc adapts a function to ImageSource.
type ImageSourceFunc func(ctx context.Context) ([]byte, error)

func (f ImageSourceFunc) Load(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// LocationProvider supplies the current position on a best-effort basis.
// Returning nil coordinates means no fix is available.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (*face.Coordinates, error)
}

// LocationFunc adapts a function to LocationProvider.
type LocationFunc func(ctx context.Context) (*face.Coordinates, error)

func (f LocationFunc) CurrentLocation(ctx context.Context) (*face.Coordinates, error) {
	return f(ctx)
}

// Authenticator performs a single identity check. A non-nil error means the
// check failed or is unavailable; its message is shown to the user.
type Authenticator interface {
	Authenticate(ctx context.Context, reason string) error
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, reason string) error

func (f AuthenticatorFunc) Authenticate(ctx context.Context, reason string) error {
	return f(ctx, reason)
}
