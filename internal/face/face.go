// Package face defines the Face record: a named photo, optionally geotagged.
package face

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Coordinates is a geographic position in decimal degrees.
// A Face either carries a full pair or none at all.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// NewCoordinates builds a Coordinates pair from two optional values.
// It returns nil unless both are present.
func NewCoordinates(lat, lng *float64) *Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &Coordinates{Latitude: *lat, Longitude: *lng}
}

// Valid reports whether the pair lies within the WGS84 range.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Face is a named photo record.
type Face struct {
	ID          uuid.UUID
	Image       []byte
	Name        string
	Coordinates *Coordinates
}

var (
	errMissingID    = errors.New("face has no identifier")
	errMissingImage = errors.New("face has no image data")
)

// NewPending creates an unsaved face holding raw image bytes, an empty name and no location.
func NewPending(image []byte) Face {
	return Face{
		ID:    uuid.New(),
		Image: image,
	}
}

// New creates a face ready to be persisted. The name is normalized with TrimName.
func New(image []byte, name string, coords *Coordinates) Face {
	f := Face{
		ID:    uuid.New(),
		Image: image,
		Name:  TrimName(name),
	}
	if coords != nil {
		c := *coords
		f.Coordinates = &c
	}
	return f
}

// Equal compares identity only.
func (f Face) Equal(other Face) bool {
	return f.ID == other.ID
}

// HasLocation reports whether the face is geotagged.
func (f Face) HasLocation() bool {
	return f.Coordinates != nil
}

// Latitude returns the latitude as an optional value, for nullable storage columns.
func (f Face) Latitude() *float64 {
	if f.Coordinates == nil {
		return nil
	}
	v := f.Coordinates.Latitude
	return &v
}

// Longitude returns the longitude as an optional value, for nullable storage columns.
func (f Face) Longitude() *float64 {
	if f.Coordinates == nil {
		return nil
	}
	v := f.Coordinates.Longitude
	return &v
}

// CheckStorable verifies the fields every store requires.
// Name length is not checked here: that rule belongs to the creation workflow.
func (f Face) CheckStorable() error {
	if f.ID == uuid.Nil {
		return errMissingID
	}
	if len(f.Image) == 0 {
		return fmt.Errorf("face %s: %w", f.ID, errMissingImage)
	}
	return nil
}
