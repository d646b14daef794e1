package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emphz/rfqcart/internal/config"
	"github.com/emphz/rfqcart/internal/paths"
	"github.com/emphz/rfqcart/internal/storage"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize rfq configuration and storage",
		Long:  "Create the configuration and data directories, write a default config.yaml, and create the cart database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, s)
		},
	}
}

func runInit(cmd *cobra.Command, s *session) error {
	configDir, err := paths.ResolveConfigDir(s.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := config.EnsureDefaultFile(configDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	dataDir, err := s.dataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	backend := storage.NewBackend(s.logger)
	if err := backend.Attach(s.settings.StorageConfig(dataDir)); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := backend.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "rfq initialized successfully")
	fmt.Fprintln(out, "  config:", configDir)
	fmt.Fprintln(out, "  data:  ", dataDir)
	return nil
}
