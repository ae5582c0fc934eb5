// Package main is the entry point for the pokedex service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

var (
	profile   string
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Pokédex service",
	Long: `pokedex looks up Pokémon in the public Pokémon API and reshapes the
records into summary, move, stat and ability views.

Run without a subcommand to start the HTTP server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	defaultProfile := os.Getenv("APP_ENVIRONMENT")
	if defaultProfile == "" {
		defaultProfile = "local"
	}

	rootCmd.PersistentFlags().StringVar(&profile, "profile", defaultProfile, "Config profile (configs/<profile>.yaml)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "Directory holding base.yaml and profile files")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lookupCmd)
}
