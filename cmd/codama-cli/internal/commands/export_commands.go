package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codama/internal/models"
	"codama/internal/repositories"
	"codama/internal/services"
	"codama/internal/storage"

	"github.com/spf13/cobra"
)

// ExportTransactionsCmd writes every transaction matching the filter flags
// to --out. The format follows the file extension.
func (h *CommandHandler) ExportTransactionsCmd(cmd *cobra.Command, _ []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("invalid out flag: %w", err)
	}
	write, err := exportWriter(out)
	if err != nil {
		return err
	}
	q, err := exportQuery(cmd)
	if err != nil {
		return err
	}

	stores, err := h.open(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer h.close()

	disk, err := storage.NewLocalDisk(h.cfg.Storage.Root)
	if err != nil {
		return err
	}
	transactions := services.NewTransactionService(repositories.NewTransactionRepository(stores.Pool), disk, h.log)

	txs, err := transactions.Export(cmd.Context(), services.SystemActor, q)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := write(file, txs); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txs), out)
	return nil
}

func exportWriter(out string) (func(io.Writer, []models.Transaction) error, error) {
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		return services.WriteTransactionsXLSX, nil
	case ".csv":
		return services.WriteTransactionsCSV, nil
	}
	return nil, fmt.Errorf("unsupported export file %q: use .xlsx or .csv", out)
}

func exportQuery(cmd *cobra.Command) (models.ListQuery, error) {
	q := models.ListQuery{Filters: map[string]string{}}
	for _, name := range []string{"status", "user_id", "category_id", "from", "until"} {
		value, err := cmd.Flags().GetString(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			return q, fmt.Errorf("invalid %s flag: %w", name, err)
		}
		if value != "" {
			q.Filters[name] = value
		}
	}
	q.Normalize()
	return q, nil
}

func InitExportCommands(rootCmd *cobra.Command, handler *CommandHandler) {
	var exportTransactionsCmd = &cobra.Command{
		Use:   "export-transactions",
		Short: "Export transactions to an xlsx or csv file",
		RunE:  handler.ExportTransactionsCmd,
	}
	exportTransactionsCmd.Flags().String("out", "transactions.xlsx", "Output file (.xlsx or .csv)")
	exportTransactionsCmd.Flags().String("status", "", "Only transactions with this status")
	exportTransactionsCmd.Flags().String("user-id", "", "Only transactions of this user")
	exportTransactionsCmd.Flags().String("category-id", "", "Only transactions in this category")
	exportTransactionsCmd.Flags().String("from", "", "Created on or after this date (YYYY-MM-DD)")
	exportTransactionsCmd.Flags().String("until", "", "Created on or before this date (YYYY-MM-DD)")
	rootCmd.AddCommand(exportTransactionsCmd)
}
