package command

import (
	"fmt"
	"log/slog"
	"os"

	"filmhub/internal/config"
	"filmhub/internal/logging"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Subcommands load configuration lazily
// so --help works without a valid environment.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filmhub-admin",
		Short: "filmhub-admin - operator tasks for the FilmHub API",
		Long: `filmhub-admin reads the same environment as the API server (.env and
process variables) and runs one-off maintenance tasks against its store.`,
		SilenceUsage: true,
	}

	root.AddCommand(newConfigCmd(), newMigrateCmd(), newSeedAdminCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
}
