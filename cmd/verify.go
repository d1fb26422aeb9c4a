package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/fingerprint"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every saved image still decodes",
	Long: `Decode every saved image and report records whose image is corrupt.
Faces saved more than once with the same picture are listed as duplicates.

Examples:
  # Report corrupt records
  name-that-face verify

  # Remove them
  name-that-face verify --delete

  # JSON output for scripting
  name-that-face verify --json`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Bool("delete", false, "Delete faces whose image does not decode")
	verifyCmd.Flags().Int("threshold", fingerprint.DefaultThreshold, "Maximum hash distance for two images to count as duplicates (-1 disables)")
	verifyCmd.Flags().Bool("json", false, "Output as JSON instead of progress bar")
}

// VerifyResult represents the result of a verify run
type VerifyResult struct {
	Checked       int            `json:"checked"`
	Corrupt       []FaceOutput   `json:"corrupt"`
	Duplicates    [][]FaceOutput `json:"duplicates"`
	Deleted       int            `json:"deleted"`
	DurationMs    int64          `json:"duration_ms"`
	DurationHuman string         `json:"duration_human,omitempty"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	deleteCorrupt := mustGetBool(cmd, "delete")
	threshold := mustGetInt(cmd, "threshold")
	jsonOutput := mustGetBool(cmd, "json")
	ctx := context.Background()
	start := time.Now()

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

	var bar *progressbar.ProgressBar
	if !jsonOutput {
		bar = progressbar.NewOptions(len(faces),
			progressbar.OptionSetDescription("Verifying images"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("faces"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionFullWidth(),
		)
	}

	result := VerifyResult{Checked: len(faces), Corrupt: []FaceOutput{}, Duplicates: [][]FaceOutput{}}
	var corrupt []face.Face
	for _, f := range faces {
		if _, _, err := face.DecodeImage(f.Image); err != nil {
			corrupt = append(corrupt, f)
			result.Corrupt = append(result.Corrupt, newFaceOutput(f))
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	if threshold >= 0 {
		for _, g := range fingerprint.Duplicates(faces, threshold) {
			group := make([]FaceOutput, 0, len(g.Faces))
			for _, f := range g.Faces {
				group = append(group, newFaceOutput(f))
			}
			result.Duplicates = append(result.Duplicates, group)
		}
	}

	if deleteCorrupt {
		for _, f := range corrupt {
			if err := controller.Delete(ctx, f); err != nil {
				return fmt.Errorf("failed to delete corrupt face %s: %w", f.ID, err)
			}
			result.Deleted++
		}
	}

	duration := time.Since(start)
	result.DurationMs = duration.Milliseconds()
	result.DurationHuman = formatDuration(duration)

	if jsonOutput {
		return outputJSON(result)
	}

	fmt.Println("\nVerify complete!")
	fmt.Printf("  Faces checked: %d\n", result.Checked)
	fmt.Printf("  Corrupt:       %d\n", len(result.Corrupt))
	for _, c := range result.Corrupt {
		fmt.Printf("    %s  %s\n", c.ID, c.Name)
	}
	fmt.Printf("  Duplicates:    %d\n", len(result.Duplicates))
	for _, group := range result.Duplicates {
		names := make([]string, len(group))
		for i, f := range group {
			names[i] = fmt.Sprintf("%s (%s)", f.Name, f.ID)
		}
		fmt.Printf("    %s\n", strings.Join(names, ", "))
	}
	if deleteCorrupt {
		fmt.Printf("  Deleted:       %d\n", result.Deleted)
	}
	fmt.Printf("  Duration:      %s\n", result.DurationHuman)
	return nil
}
