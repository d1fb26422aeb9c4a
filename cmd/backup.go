package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/backup"
	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload the collection to an S3-compatible bucket",
	Long: `Upload every saved image plus a YAML manifest (names and coordinates) to
the bucket configured with BACKUP_ENDPOINT, BACKUP_ACCESS_KEY, BACKUP_SECRET_KEY
and BACKUP_BUCKET. Each run writes under its own timestamped prefix.

Examples:
  name-that-face backup
  name-that-face backup --prefix before-migration`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().String("prefix", "", "Key prefix for this backup (defaults to a UTC timestamp)")
	backupCmd.Flags().Bool("json", false, "Output as JSON instead of progress bar")
}

// BackupOutput represents the result of a backup run
type BackupOutput struct {
	Bucket     string `json:"bucket"`
	Prefix     string `json:"prefix"`
	Manifest   string `json:"manifest"`
	Uploaded   int    `json:"uploaded"`
	DurationMs int64  `json:"duration_ms"`
}

func runBackup(cmd *cobra.Command, args []string) error {
	prefix := mustGetString(cmd, "prefix")
	jsonOutput := mustGetBool(cmd, "json")
	ctx := context.Background()
	start := time.Now()

	cfg := config.Load()
	target, err := backup.NewMinIOStore(cfg.Backup)
	if err != nil {
		return err
	}

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
			progressbar.OptionSetDescription("Uploading"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("faces"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}

	res, err := backup.Run(ctx, store, target, backup.Options{
		Prefix: prefix,
		OnFace: func(face.Face) {
			if bar != nil {
				bar.Add(1)
			}
		},
	})
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	out := BackupOutput{
		Bucket:     target.Bucket(),
		Prefix:     res.Prefix,
		Manifest:   res.Manifest,
		Uploaded:   res.Uploaded,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if jsonOutput {
		return outputJSON(out)
	}

	fmt.Println("\nBackup complete!")
	fmt.Printf("  Bucket:   %s\n", out.Bucket)
	fmt.Printf("  Prefix:   %s\n", out.Prefix)
	fmt.Printf("  Uploaded: %d\n", out.Uploaded)
	fmt.Printf("  Manifest: %s\n", out.Manifest)
	fmt.Printf("  Duration: %s\n", formatDuration(time.Since(start)))
	return nil
}
