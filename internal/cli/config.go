package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/jobtrack/internal/config"
	"github.com/example/jobtrack/internal/wire"
)

// ConfigCmd returns the config command group.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the jobtrack configuration file",
	}

	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Write config.yaml with the default values to the jobtrack home
(~/.jobtrack, or $JOBTRACK_HOME when set).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.HomeDir()
			if err != nil {
				return err
			}

			path := config.Path(dir)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			}

			if err := config.SaveConfig(dir, config.Default(dir)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dir := wire.Config()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config:    %s\n", config.Path(dir))
			fmt.Fprintf(out, "Database:  %s\n", cfg.DBPath)
			fmt.Fprintf(out, "Log level: %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "API:       %s (timeout %s, %.1f req/s)\n", cfg.API.BaseURL, cfg.API.Timeout, cfg.API.RequestsPerSecond)
			return nil
		},
	}
}
