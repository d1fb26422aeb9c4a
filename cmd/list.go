package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/constants"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved faces ordered by name",
	Long: `List every saved face in ascending name order.

Examples:
  name-that-face list
  name-that-face list --json
  name-that-face list --thumbs ./thumbs`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().String("thumbs", "", "Write a JPEG thumbnail of every face into this directory")
}

func runList(cmd *cobra.Command, args []string) error {
	jsonOutput := mustGetBool(cmd, "json")
	thumbDir := mustGetString(cmd, "thumbs")
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

	faces, err := controller.Faces()
	if err != nil {
		return err
	}

	if thumbDir != "" {
		if err := writeThumbnails(thumbDir, faces); err != nil {
			return err
		}
	}

	if jsonOutput {
		out := make([]FaceOutput, 0, len(faces))
		for _, f := range faces {
			out = append(out, newFaceOutput(f))
		}
		return outputJSON(out)
	}

	if len(faces) == 0 {
		fmt.Println("No Picture")
		fmt.Println("Import a photo with: name-that-face add <image> --name <name>")
		return nil
	}

	for _, f := range faces {
		loc := "-"
		if f.HasLocation() {
			loc = fmt.Sprintf("%.4f, %.4f", f.Coordinates.Latitude, f.Coordinates.Longitude)
		}
		fmt.Printf("%s  %-30s  %s\n", f.ID, f.Name, loc)
	}
	fmt.Printf("\n%d face(s)\n", len(faces))
	return nil
}

// writeThumbnails renders one thumbnail per face. Faces whose image does not
// decode are reported and skipped.
func writeThumbnails(dir string, faces []face.Face) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}
	for _, f := range faces {
		thumb, err := face.Thumbnail(f.Image, constants.ThumbnailSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s (%s): image not available\n", f.Name, f.ID)
			continue
		}
		path := filepath.Join(dir, f.ID.String()+".jpg")
		if err := os.WriteFile(path, thumb, 0o644); err != nil {
			return fmt.Errorf("failed to write thumbnail: %w", err)
		}
	}
	return nil
}
