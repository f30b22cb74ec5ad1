package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/jobtrack/internal/command"
)

// Dispatcher routes a decoded command to the adapter that serves it.
type Dispatcher struct {
	postings *PostingAdapter
	staging  *StagingAdapter
	settings *SettingsAdapter
	out      io.Writer
}

// NewDispatcher creates a Dispatcher over the given adapters.
func NewDispatcher(postings *PostingAdapter, staging *StagingAdapter, settings *SettingsAdapter, out io.Writer) *Dispatcher {
	return &Dispatcher{
		postings: postings,
		staging:  staging,
		settings: settings,
		out:      out,
	}
}

// Execute runs one command.
func (d *Dispatcher) Execute(ctx context.Context, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.ListStaged:
		return d.staging.List(ctx)
	case command.ListDurable:
		return d.postings.List(ctx)
	case command.Show:
		_, err := d.postings.Show(ctx, c.ID)
		return err
	case command.ShowStaged:
		_, err := d.staging.Show(ctx, c.ID)
		return err
	case command.Move:
		return d.postings.Move(ctx, c.StagingID)
	case command.Update:
		return d.postings.Update(ctx, c.ID, c.Status)
	case command.Delete:
		return d.postings.Delete(ctx, c.ID)
	case command.History:
		return d.postings.History(ctx, c.ID)
	case command.Scrape:
		return d.staging.Scrape(ctx)
	case command.Clear:
		return d.staging.Clear(ctx)
	case command.ShowSettings:
		return d.settings.Show(ctx)
	case command.SetSetting:
		return d.settings.Set(ctx, c.Field, c.Value)
	case command.Help:
		d.Help()
		return nil
	case command.Quit:
		fmt.Fprintln(d.out, color.New(color.FgRed, color.Bold).Sprint("Exiting program..."))
		return nil
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

// Help prints the command overview.
func (d *Dispatcher) Help() {
	fmt.Fprintln(d.out, color.New(color.FgHiYellow, color.Bold, color.Underline).Sprint("Available commands:"))
	for _, u := range command.Usages {
		fmt.Fprintf(d.out, "  %s %s\n", color.New(color.FgWhite).Sprintf("%-26s", "'"+u.Syntax+"'"), u.Description)
	}
}
