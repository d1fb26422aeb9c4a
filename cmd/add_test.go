package cmd

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/location"
)

func float64Ptr(v float64) *float64 {
	return &v
}

func TestLocationFor(t *testing.T) {
	configured := &config.Config{Location: config.LocationConfig{
		Latitude:  float64Ptr(50.0875),
		Longitude: float64Ptr(14.4213),
	}}

	tests := []struct {
		name    string
		args    []string
		want    *face.Coordinates
		wantErr bool
	}{
		{"config fallback", nil, &face.Coordinates{Latitude: 50.0875, Longitude: 14.4213}, false},
		{"flags override config", []string{"--lat", "-33.86", "--lon", "151.21"}, &face.Coordinates{Latitude: -33.86, Longitude: 151.21}, false},
		{"range edges", []string{"--lat", "90", "--lon", "-180"}, &face.Coordinates{Latitude: 90, Longitude: -180}, false},
		{"no location", []string{"--no-location"}, nil, false},
		{"no location wins over flags", []string{"--no-location", "--lat", "95", "--lon", "14"}, nil, false},
		{"latitude out of range", []string{"--lat", "95", "--lon", "14"}, nil, true},
		{"longitude out of range", []string{"--lat", "50", "--lon", "-181"}, nil, true},
		{"latitude alone", []string{"--lat", "50"}, nil, true},
		{"longitude alone", []string{"--lon", "14"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "add"}
			addLocationFlags(cmd)
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}

			provider, err := locationFor(cmd, configured)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("locationFor() = %T, want error", provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("locationFor() error = %v", err)
			}

			got, err := provider.CurrentLocation(context.Background())
			if err != nil {
				t.Fatalf("CurrentLocation() error = %v", err)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("CurrentLocation() = %+v, want none", got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("CurrentLocation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocationFor_NoConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "add"}
	addLocationFlags(cmd)

	provider, err := locationFor(cmd, &config.Config{})
	if err != nil {
		t.Fatalf("locationFor() error = %v", err)
	}
	if _, ok := provider.(location.None); !ok {
		t.Errorf("locationFor() = %T, want location.None", provider)
	}
}
