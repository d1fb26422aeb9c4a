package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/mapview"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

var showCmd = &cobra.Command{
	Use:   "show <face-id>",
	Short: "Show a face with its location",
	Long: `Show the name and location of a saved face, with a map link when the face
was saved with coordinates. Use --export to write the original image to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().String("export", "", "Write the original image to this file")
	showCmd.Flags().Bool("json", false, "Output as JSON")
}

// ShowOutput is the JSON form of the detail view.
type ShowOutput struct {
	FaceOutput
	Map mapview.View `json:"map"`
}

func runShow(cmd *cobra.Command, args []string) error {
	exportPath := mustGetString(cmd, "export")
	jsonOutput := mustGetBool(cmd, "json")
	ctx := context.Background()

	cfg := config.Load()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	controller := workflow.New(store, nil)
	if err := unlock(ctx, cfg, controller); err != nil {
		return err
	}

	f, err := faceByID(controller, args[0])
	if err != nil {
		return err
	}

	if exportPath != "" {
		if err := os.WriteFile(exportPath, f.Image, 0o600); err != nil {
			return fmt.Errorf("failed to export image: %w", err)
		}
	}

	view := mapview.ForFace(f)
	if jsonOutput {
		return outputJSON(ShowOutput{FaceOutput: newFaceOutput(f), Map: view})
	}

	fmt.Printf("Name:     %s\n", f.Name)
	fmt.Printf("ID:       %s\n", f.ID)
	if _, format, err := face.DecodeImage(f.Image); err == nil {
		fmt.Printf("Image:    %s, %d bytes\n", format, len(f.Image))
	} else {
		fmt.Printf("Image:    not available (%d bytes)\n", len(f.Image))
	}
	fmt.Printf("Location: %s\n", view.Description)
	if view.URL != "" {
		fmt.Printf("Map:      %s\n", view.URL)
	}
	if exportPath != "" {
		fmt.Printf("Exported: %s\n", exportPath)
	}
	return nil
}
