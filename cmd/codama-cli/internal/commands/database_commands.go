package commands

import (
	"fmt"

	"codama/internal/repositories"

	"github.com/spf13/cobra"
)

// MigrateCmd applies the schema migrations.
func (h *CommandHandler) MigrateCmd(cmd *cobra.Command, _ []string) error {
	// Opening the stores runs every migration.
	if _, err := h.open(cmd.Context(), cmd); err != nil {
		return err
	}
	defer h.close()

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}

// PruneSessionsCmd deletes refresh sessions that have expired.
func (h *CommandHandler) PruneSessionsCmd(cmd *cobra.Command, _ []string) error {
	stores, err := h.open(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer h.close()

	deleted, err := repositories.NewSessionRepository(stores.Gorm).DeleteExpired(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to prune sessions: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired sessions\n", deleted)
	return nil
}

func InitDatabaseCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create the database if needed and apply migrations",
		RunE:  handler.MigrateCmd,
	}
	rootCmd.AddCommand(migrateCmd)

	var pruneSessionsCmd = &cobra.Command{
		Use:   "prune-sessions",
		Short: "Delete expired refresh sessions",
		RunE:  handler.PruneSessionsCmd,
	}
	rootCmd.AddCommand(pruneSessionsCmd)
}
