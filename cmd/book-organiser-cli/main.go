// Package main is the entry point for the book-organiser-cli application.
// It registers the operator sub-commands (migrate, users, summaries, catalog)
// and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MGTheTrain/book-organiser/cmd/book-organiser-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "book-organiser-cli",
		Short: "Operator tool for the book organiser",
		Long: `book-organiser-cli manages a book organiser deployment from the command line.
It migrates the database, creates and lists user accounts, runs the AI summary
poller once and queries the Google Books catalog.

The configuration file is read from --config, falling back to CONFIG_PATH.
Every setting can be overridden with a BOOKORG_* environment variable.`,
		SilenceUsage: true,
	}

	// Initialize all command groups BEFORE executing
	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
