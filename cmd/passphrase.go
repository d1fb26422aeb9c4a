package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/name-that-face/internal/auth"
)

var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Generate a passphrase hash for FACES_PASSPHRASE_HASH",
	Long: `Prompt for a new passphrase twice and print its bcrypt hash. Put the hash
in FACES_PASSPHRASE_HASH (for example in .env) to enable unlocking.`,
	Args: cobra.NoArgs,
	RunE: runPassphrase,
}

func init() {
	rootCmd.AddCommand(passphraseCmd)
}

func runPassphrase(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	prompt := auth.Prompt(os.Stdin, os.Stderr)

	first, err := prompt(ctx, "Enter a new passphrase.")
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	second, err := prompt(ctx, "Repeat the passphrase.")
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if first != second {
		return errors.New("passphrases do not match")
	}

	hash, err := auth.Hash(first)
	if err != nil {
		return err
	}
	fmt.Printf("FACES_PASSPHRASE_HASH='%s'\n", hash)
	return nil
}
