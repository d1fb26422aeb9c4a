package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "name-that-face",
	Short: "Keep a private, named collection of faces",
	Long: `Name That Face keeps a collection of photos, each labelled with the name of
the person in it and optionally the place it was saved. The collection is
locked behind a passphrase and stored in SQLite, PostgreSQL or MariaDB.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
