// Package location provides the location collaborators used when saving a face.
package location

import (
	"context"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

// Static always reports the same fix.
type Static struct {
	Coordinates face.Coordinates
}

// CurrentLocation implements workflow.LocationProvider.
func (s Static) CurrentLocation(ctx context.Context) (*face.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := s.Coordinates
	return &c, nil
}

// None never has a fix.
type None struct{}

// CurrentLocation implements workflow.LocationProvider.
func (None) CurrentLocation(ctx context.Context) (*face.Coordinates, error) {
	return nil, nil
}

// FromConfig returns Static when both latitude and longitude are configured,
// and None otherwise.
func FromConfig(cfg config.LocationConfig) workflow.LocationProvider {
	coords := face.NewCoordinates(cfg.Latitude, cfg.Longitude)
	if coords == nil || !coords.Valid() {
		return None{}
	}
	return Static{Coordinates: *coords}
}
