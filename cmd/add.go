package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/location"
	"github.com/kozaktomas/name-that-face/internal/picker"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

var addCmd = &cobra.Command{
	Use:   "add <image>",
	Short: "Import a photo and save it under a name",
	Long: `Import a photo and save it under the given name.

The name is trimmed and must be at least two characters long. The photo is
tagged with the configured location (FACES_LATITUDE / FACES_LONGITUDE) or the
one given with --lat/--lon. Screenshots are refused.

Examples:
  name-that-face add ~/Pictures/jana.jpg --name "Jana"
  name-that-face add bob.png --name Bob --lat 50.0875 --lon 14.4213
  name-that-face add carl.webp --name Carl --no-location`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("name", "", "Name of the person in the photo (required)")
	addLocationFlags(addCmd)
	addCmd.Flags().Bool("json", false, "Output the saved face as JSON")
	_ = addCmd.MarkFlagRequired("name")
}

func addLocationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("lat", 0, "Latitude to save instead of the configured location")
	cmd.Flags().Float64("lon", 0, "Longitude to save instead of the configured location")
	cmd.Flags().Bool("no-location", false, "Save without coordinates")
}

// locationFor picks the location collaborator from flags, falling back to config.
// Coordinates given on the command line must come as a pair within WGS84 range.
func locationFor(cmd *cobra.Command, cfg *config.Config) (workflow.LocationProvider, error) {
	if mustGetBool(cmd, "no-location") {
		return location.None{}, nil
	}
	lat, lon := optionalFloat64(cmd, "lat"), optionalFloat64(cmd, "lon")
	switch {
	case lat == nil && lon == nil:
		return location.FromConfig(cfg.Location), nil
	case lat == nil || lon == nil:
		return nil, errors.New("--lat and --lon must be given together")
	}
	coords := face.Coordinates{Latitude: *lat, Longitude: *lon}
	if !coords.Valid() {
		return nil, fmt.Errorf("coordinates %g, %g out of range (latitude -90..90, longitude -180..180)", *lat, *lon)
	}
	return location.Static{Coordinates: coords}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := mustGetString(cmd, "name")
	jsonOutput := mustGetBool(cmd, "json")
	ctx := context.Background()

	if !face.IsValidName(name) {
		return fmt.Errorf("name must be at least %d characters after trimming", constants.MinNameLength)
	}

	cfg := config.Load()
	loc, err := locationFor(cmd, cfg)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	controller := workflow.New(store, loc)
	if err := unlock(ctx, cfg, controller); err != nil {
		return err
	}

	src := picker.File{
		Path:    args[0],
		Policy:  picker.NewPolicy(cfg.Policy.Picker),
		MaxSize: constants.MaxUploadSize,
	}
	if err := controller.Import(ctx, src); err != nil {
		return err
	}
	if controller.PendingState() != workflow.AwaitingName {
		return fmt.Errorf("%s is empty", args[0])
	}
	if !controller.PendingImageValid() {
		controller.Cancel()
		return fmt.Errorf("%s: image not available", args[0])
	}

	saved, err := controller.Confirm(ctx, name)
	if err != nil {
		controller.Cancel()
		return fmt.Errorf("failed to save face: %w", err)
	}

	if jsonOutput {
		return outputJSON(newFaceOutput(saved))
	}
	fmt.Printf("Saved %s (%s)\n", saved.Name, saved.ID)
	if saved.HasLocation() {
		fmt.Printf("  Location: %.6f, %.6f\n", saved.Coordinates.Latitude, saved.Coordinates.Longitude)
	} else {
		fmt.Println("  Location: none")
	}
	return nil
}
