package commands

import (
	"context"
	"fmt"

	"codama/internal/config"
	"codama/internal/logger"
	"codama/internal/server"

	"github.com/spf13/cobra"
)

// CommandHandler holds what every command needs. Config, logger and
// database handles are opened on first use so --help works without a
// database.
type CommandHandler struct {
	cfg    *config.Config
	log    logger.Logger
	stores *server.Stores
}

func NewCommandHandler() *CommandHandler {
	return &CommandHandler{}
}

func (h *CommandHandler) setup(cmd *cobra.Command) error {
	if h.cfg != nil {
		return nil
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("invalid config flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	h.cfg = cfg
	h.log = log
	return nil
}

// open loads the configuration and connects to the migrated database.
func (h *CommandHandler) open(ctx context.Context, cmd *cobra.Command) (*server.Stores, error) {
	if err := h.setup(cmd); err != nil {
		return nil, err
	}
	if h.stores == nil {
		stores, err := server.OpenStores(ctx, h.cfg, h.log)
		if err != nil {
			return nil, err
		}
		h.stores = stores
	}
	return h.stores, nil
}

func (h *CommandHandler) close() {
	if h.stores != nil {
		h.stores.Close()
		h.stores = nil
	}
}
