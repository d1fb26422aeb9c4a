package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/workflow"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <face-id>...",
	Short: "Delete saved faces",
	Long:  `Delete one or more saved faces immediately. There is no confirmation and no undo.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	for _, arg := range args {
		f, err := faceByID(controller, arg)
		if err != nil {
			return err
		}
		if err := controller.Delete(ctx, f); err != nil {
			return fmt.Errorf("failed to delete %s: %w", f.ID, err)
		}
		fmt.Printf("Deleted %s (%s)\n", f.Name, f.ID)
	}
	return nil
}
