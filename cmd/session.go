package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/name-that-face/internal/auth"
	"github.com/kozaktomas/name-that-face/internal/config"
	"github.com/kozaktomas/name-that-face/internal/database"
	"github.com/kozaktomas/name-that-face/internal/face"
	"github.com/kozaktomas/name-that-face/internal/workflow"

	// Register database backends
	_ "github.com/kozaktomas/name-that-face/internal/database/mariadb"
	_ "github.com/kozaktomas/name-that-face/internal/database/postgres"
	_ "github.com/kozaktomas/name-that-face/internal/database/sqlite"
)

// openStore connects to the configured backend.
func openStore(ctx context.Context, cfg *config.Config) (database.Store, error) {
	store, err := database.Open(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Database.Driver, err)
	}
	return store, nil
}

// unlock prompts for the passphrase on the terminal and unlocks c.
// On failure the controller's alert is turned into the returned error.
func unlock(ctx context.Context, cfg *config.Config, c *workflow.Controller) error {
	authenticator := auth.NewPassphrase(cfg.Auth.PassphraseHash, auth.Prompt(os.Stdin, os.Stderr), cfg.Policy.Auth)
	if err := c.Unlock(ctx, authenticator); err != nil {
		if alert, ok := c.Alert(); ok {
			c.DismissAlert()
			return fmt.Errorf("%s: %s", alert.Title, alert.Message)
		}
		return err
	}
	return nil
}

// faceByID resolves a face from the unlocked controller's snapshot.
func faceByID(c *workflow.Controller, arg string) (face.Face, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return face.Face{}, fmt.Errorf("invalid face id %q: %w", arg, err)
	}
	f, err := c.Face(id)
	if errors.Is(err, workflow.ErrNotFound) {
		return face.Face{}, fmt.Errorf("face %s not found", id)
	}
	return f, err
}

// FaceOutput is the JSON representation of a face for scripting.
type FaceOutput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ImageSize int      `json:"image_size"`
}

func newFaceOutput(f face.Face) FaceOutput {
	return FaceOutput{
		ID:        f.ID.String(),
		Name:      f.Name,
		Latitude:  f.Latitude(),
		Longitude: f.Longitude(),
		ImageSize: len(f.Image),
	}
}

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
