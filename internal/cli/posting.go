package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/jobtrack/internal/command"
	"github.com/example/jobtrack/internal/ctxutil"
	"github.com/example/jobtrack/internal/wire"
)

// dispatch decodes the words of a one-shot invocation with the shell parser
// and runs the resulting command.
func dispatch(cmd *cobra.Command, words ...string) error {
	c, err := command.Parse(strings.Join(words, " "))
	if err != nil {
		return err
	}

	ctx := ctxutil.WithOrigin(cmd.Context(), ctxutil.OriginCLI)
	return wire.DispatcherWithOutput(cmd.OutOrStdout()).Execute(ctx, c)
}

// ListCmd returns the list command.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [. | main | <id> | staged <id>]",
		Short: "List staged or stored postings",
		Long: `List postings.

  list .             all staged postings, oldest first
  list main          all stored postings, newest first
  list <id>          one stored posting
  list staged <id>   one staged posting`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, append([]string{"list"}, args...)...)
		},
	}
}

// MoveCmd returns the move command.
func MoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <staged-id>",
		Short: "Store a staged posting",
		Long: `Copy a staged posting into the durable store.

The staged posting is kept; moving it a second time fails because its link
is already stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, "move", args[0])
		},
	}
}

// UpdateCmd returns the update command.
func UpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <status>",
		Short: "Update the status of a stored posting",
		Long: `Update the application status of a stored posting.

Valid statuses: fetched, read, applied, interview, offer, rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, "update", args[0], args[1])
		},
	}
}

// DeleteCmd returns the delete command.
func DeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, "delete", args[0])
		},
	}
}

// HistoryCmd returns the history command.
func HistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the change history of a stored posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, "history", args[0])
		},
	}
}

// ScrapeCmd returns the scrape command.
func ScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch newly posted jobs into staging",
		Long: `Fetch postings from the job search API using the current settings.

Postings whose link is already staged are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, "scrape")
		},
	}
}

// ClearCmd returns the clear command.
func ClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the staging area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, "clear")
		},
	}
}

// SettingsCmd returns the settings command.
func SettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings [<field> <value>]",
		Short: "Show or change the search settings",
		Long: `Show the search settings, or change one field.

Fields: search, region, radius, amount.

Examples:
  jobtrack settings
  jobtrack settings region Hamburg
  jobtrack settings search "Werkstudent Software"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return dispatch(cmd, "settings", ".")
			}
			return dispatch(cmd, append([]string{"settings"}, args...)...)
		},
	}
}
