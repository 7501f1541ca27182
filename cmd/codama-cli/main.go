// Package main is the entry point for codama-cli, the maintenance tool of
// the Codama backend. It registers the database, user and export commands.
package main

import (
	"fmt"
	"log"
	"os"

	"codama/cmd/codama-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "codama-cli",
		Short: "Maintenance commands for the Codama backend",
		Long: `codama-cli runs maintenance tasks against the Codama database.
It reads the same configuration as the API server (.env, config.yaml and
environment variables such as DB_HOST, DB_USERNAME and DB_PASSWORD).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "path to a config file")

	handler := commands.NewCommandHandler()
	commands.InitDatabaseCommands(rootCmd, handler)
	commands.InitUserCommands(rootCmd, handler)
	commands.InitExportCommands(rootCmd, handler)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
