// Package mapview describes the map shown on a face's detail page.
package mapview

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/face"
)

// NoLocation is shown for faces saved without coordinates.
const NoLocation = "No location data available."

// Region is a rectangular map area around a centre point.
type Region struct {
	Center         face.Coordinates `json:"center"`
	LatitudeDelta  float64          `json:"latitude_delta"`
	LongitudeDelta float64          `json:"longitude_delta"`
}

// Bounds returns the south-west and north-east corners, clamped to valid ranges.
func (r Region) Bounds() (sw, ne face.Coordinates) {
	sw = face.Coordinates{
		Latitude:  clamp(r.Center.Latitude-r.LatitudeDelta/2, -90, 90),
		Longitude: clamp(r.Center.Longitude-r.LongitudeDelta/2, -180, 180),
	}
	ne = face.Coordinates{
		Latitude:  clamp(r.Center.Latitude+r.LatitudeDelta/2, -90, 90),
		Longitude: clamp(r.Center.Longitude+r.LongitudeDelta/2, -180, 180),
	}
	return sw, ne
}

// View is the map portion of the detail page.
type View struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Region      *Region `json:"region,omitempty"`
	URL         string  `json:"url,omitempty"`
}

// ForFace builds the map view for f. Faces without coordinates get a view
// with only the NoLocation description.
func ForFace(f face.Face) View {
	if !f.HasLocation() {
		return View{Label: f.Name, Description: NoLocation}
	}
	c := *f.Coordinates
	return View{
		Label:       f.Name,
		Description: Describe(c),
		Region: &Region{
			Center:         c,
			LatitudeDelta:  constants.MapSpanDegrees,
			LongitudeDelta: constants.MapSpanDegrees,
		},
		URL: OpenStreetMapURL(c),
	}
}

// Describe formats coordinates as "Lat: <lat>, Lon: <lng>".
func Describe(c face.Coordinates) string {
	return fmt.Sprintf("Lat: %s, Lon: %s", formatDegrees(c.Latitude), formatDegrees(c.Longitude))
}

// OpenStreetMapURL links to an OpenStreetMap page with a marker at c.
func OpenStreetMapURL(c face.Coordinates) string {
	lat := formatDegrees(c.Latitude)
	lon := formatDegrees(c.Longitude)
	q := url.Values{}
	q.Set("mlat", lat)
	q.Set("mlon", lon)
	return fmt.Sprintf("https://www.openstreetmap.org/?%s#map=%d/%s/%s", q.Encode(), constants.MapZoom, lat, lon)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
