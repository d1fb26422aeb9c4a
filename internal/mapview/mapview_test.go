package mapview

import (
	"math"
	"strings"
	"testing"

	"github.com/kozaktomas/name-that-face/internal/face"
)

func TestForFace_NoLocation(t *testing.T) {
	v := ForFace(face.New([]byte("x"), "Alice", nil))
	if v.Description != NoLocation {
		t.Errorf("Description = %q, want %q", v.Description, NoLocation)
	}
	if v.Region != nil || v.URL != "" {
		t.Errorf("expected no region or url, got %+v", v)
	}
	if v.Label != "Alice" {
		t.Errorf("Label = %q, want Alice", v.Label)
	}
}

func TestForFace_WithLocation(t *testing.T) {
	c := face.Coordinates{Latitude: 50.0875, Longitude: 14.4213}
	v := ForFace(face.New([]byte("x"), "Bob", &c))

	if v.Label != "Bob" {
		t.Errorf("Label = %q, want Bob", v.Label)
	}
	if v.Description != "Lat: 50.0875, Lon: 14.4213" {
		t.Errorf("Description = %q", v.Description)
	}
	if v.Region == nil {
		t.Fatal("expected a region")
	}
	if v.Region.Center != c {
		t.Errorf("Center = %+v, want %+v", v.Region.Center, c)
	}
	if v.Region.LatitudeDelta != 0.05 || v.Region.LongitudeDelta != 0.05 {
		t.Errorf("span = %v/%v, want 0.05", v.Region.LatitudeDelta, v.Region.LongitudeDelta)
	}
	if !strings.HasPrefix(v.URL, "https://www.openstreetmap.org/?mlat=50.0875&mlon=14.4213#map=") {
		t.Errorf("URL = %q", v.URL)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		c    face.Coordinates
		want string
	}{
		{face.Coordinates{Latitude: 0, Longitude: 0}, "Lat: 0, Lon: 0"},
		{face.Coordinates{Latitude: -33.8688, Longitude: 151.2093}, "Lat: -33.8688, Lon: 151.2093"},
		{face.Coordinates{Latitude: 48.5, Longitude: -122.25}, "Lat: 48.5, Lon: -122.25"},
	}
	for _, tt := range tests {
		if got := Describe(tt.c); got != tt.want {
			t.Errorf("Describe(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRegion_Bounds(t *testing.T) {
	r := Region{Center: face.Coordinates{Latitude: 10, Longitude: 20}, LatitudeDelta: 0.05, LongitudeDelta: 0.05}
	sw, ne := r.Bounds()
	if math.Abs(sw.Latitude-9.975) > 1e-9 || math.Abs(ne.Longitude-20.025) > 1e-9 {
		t.Errorf("Bounds() = %+v, %+v", sw, ne)
	}

	polar := Region{Center: face.Coordinates{Latitude: 89.99, Longitude: 179.99}, LatitudeDelta: 0.05, LongitudeDelta: 0.05}
	_, ne = polar.Bounds()
	if ne.Latitude != 90 || ne.Longitude != 180 {
		t.Errorf("Bounds() ne = %+v, want clamped to 90/180", ne)
	}
}
