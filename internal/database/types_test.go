package database

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/kozaktomas/name-that-face/internal/face"
)

func TestFaceRow_ToFace(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		lat, lng   sql.NullFloat64
		wantCoords bool
	}{
		{"both set", sql.NullFloat64{Float64: 1, Valid: true}, sql.NullFloat64{Float64: 2, Valid: true}, true},
		{"neither set", sql.NullFloat64{}, sql.NullFloat64{}, false},
		{"latitude only", sql.NullFloat64{Float64: 1, Valid: true}, sql.NullFloat64{}, false},
		{"longitude only", sql.NullFloat64{}, sql.NullFloat64{Float64: 2, Valid: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FaceRow{ID: id.String(), Name: "Al", Latitude: tt.lat, Longitude: tt.lng, Image: []byte{1}}
			f, err := row.ToFace()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.ID != id || f.Name != "Al" {
				t.Errorf("unexpected face %+v", f)
			}
			if f.HasLocation() != tt.wantCoords {
				t.Errorf("expected location=%v, got %+v", tt.wantCoords, f.Coordinates)
			}
		})
	}
}

func TestFaceRow_ToFace_BadID(t *testing.T) {
	if _, err := (FaceRow{ID: "not-a-uuid"}).ToFace(); err == nil {
		t.Error("expected error for invalid id")
	}
}

func TestNullCoordinates(t *testing.T) {
	lat, lng := NullCoordinates(face.Face{})
	if lat.Valid || lng.Valid {
		t.Error("expected both null without coordinates")
	}

	lat, lng = NullCoordinates(face.Face{Coordinates: &face.Coordinates{Latitude: 3, Longitude: 4}})
	if !lat.Valid || !lng.Valid || lat.Float64 != 3 || lng.Float64 != 4 {
		t.Errorf("unexpected values %v %v", lat, lng)
	}
}
