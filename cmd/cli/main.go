package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/kompassi/cmd/cli/bundle"
	"github.com/myrjola/kompassi/cmd/cli/catalog"
	"github.com/spf13/cobra"
	"os"
)

func init() {
	// Missing .env is fine, the commands read whatever is in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddGroup(catalog.Group)
	rootCmd.AddCommand(catalog.Lint)
	rootCmd.AddCommand(catalog.Score)
	rootCmd.AddGroup(bundle.Group)
	rootCmd.AddCommand(bundle.CustomElements)
}

var rootCmd = &cobra.Command{
	Use:  "kompassi-cli",
	Long: `Command line utilities for the Kompassi orientation quiz`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
