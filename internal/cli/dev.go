package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/jobtrack/internal/db"
	"github.com/example/jobtrack/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development utilities",
		Hidden: true,
	}

	cmd.AddCommand(devSeedCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture postings",
		Long: `Insert a handful of staged and stored fixture postings.

Fixtures are inserted with their links as keys, so running seed twice
does not duplicate them. Point JOBTRACK_HOME at a scratch directory
to keep fixtures out of your real database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(wire.DB()); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Seeded fixture data")
			return nil
		},
	}
}
