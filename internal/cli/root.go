// Package cli implements the e2ectl command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zatekoja/projectapi-e2e/internal/e2e/harness"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	"github.com/zatekoja/projectapi-e2e/pkg/config"
)

var (
	envFiles []string
	verbose  bool
)

// NewRootCmd constructs the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "e2ectl",
		Short: "e2ectl - operate the project API end-to-end harness",
		Long:  "e2ectl checks the services the e2e suites depend on, validates the operation documents, runs a smoke scenario and cleans up what earlier runs left behind.",
	}
	cmd.SilenceUsage = true
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newSmokeCmd())
	cmd.AddCommand(newCleanupCmd())
	cmd.AddCommand(newRunsCmd())
	return cmd
}

// Execute runs the CLI entrypoint.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads configuration and initialises the logger for a subcommand
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := harness.LoadConfig(ctx, envFiles...)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Log.Env, level)
	return cfg, nil
}
