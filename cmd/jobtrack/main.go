package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/jobtrack/internal/cli"
	"github.com/example/jobtrack/internal/version"
	"github.com/example/jobtrack/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "jobtrack",
		Short:   "jobtrack - track job postings from fetch to offer",
		Version: version.String(),
		Long: `jobtrack fetches job postings from the Bundesagentur für Arbeit job search
into a staging area. Postings worth keeping are moved into a durable record
where their application status is tracked.

Run without arguments to start the interactive shell.`,
		Args:          cobra.NoArgs,
		RunE:          cli.RunShell,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Posting commands
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.MoveCmd())
	rootCmd.AddCommand(cli.UpdateCmd())
	rootCmd.AddCommand(cli.DeleteCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Staging and fetch
	rootCmd.AddCommand(cli.ScrapeCmd())
	rootCmd.AddCommand(cli.ClearCmd())
	rootCmd.AddCommand(cli.SettingsCmd())

	rootCmd.AddCommand(cli.ShellCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
