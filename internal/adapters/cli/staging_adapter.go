package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/jobtrack/internal/ports/primary"
)

// StagingAdapter translates CLI operations to the staging and scrape services.
type StagingAdapter struct {
	staging primary.StagingService
	scrape  primary.ScrapeService
	out     io.Writer
}

// NewStagingAdapter creates a new StagingAdapter with the given services.
func NewStagingAdapter(staging primary.StagingService, scrape primary.ScrapeService, out io.Writer) *StagingAdapter {
	return &StagingAdapter{
		staging: staging,
		scrape:  scrape,
		out:     out,
	}
}

// List lists staged postings, oldest first.
func (a *StagingAdapter) List(ctx context.Context) error {
	staged, err := a.staging.ListStaged(ctx)
	if err != nil {
		return err
	}

	if len(staged) == 0 {
		fmt.Fprintln(a.out, "No staged postings found. Try 'scrape' first!")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tPOSITION\tLOCATION\tPOSTED\tLINK")
	fmt.Fprintln(w, "--\t-------\t--------\t--------\t------\t----")
	for _, s := range staged {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			truncate(s.Company, 30),
			truncate(s.Position, 40),
			truncate(s.Location, 20),
			s.DatePosted,
			s.Link,
		)
	}
	w.Flush()
	return nil
}

// Show displays details for a single staged posting.
func (a *StagingAdapter) Show(ctx context.Context, id int64) (*primary.StagedPosting, error) {
	s, err := a.staging.GetStaged(ctx, id)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nStaged posting: %d\n", s.ID)
	fmt.Fprintf(a.out, "Company:  %s\n", s.Company)
	fmt.Fprintf(a.out, "Position: %s\n", s.Position)
	fmt.Fprintf(a.out, "Location: %s\n", s.Location)
	fmt.Fprintf(a.out, "Link:     %s\n", color.New(color.FgBlue, color.Underline).Sprint(s.Link))
	fmt.Fprintf(a.out, "Posted:   %s\n", s.DatePosted)
	if s.FetchedAt != "" {
		fmt.Fprintf(a.out, "Fetched:  %s\n", s.FetchedAt)
	}
	fmt.Fprintln(a.out)

	return s, nil
}

// Scrape runs one fetch cycle.
func (a *StagingAdapter) Scrape(ctx context.Context) error {
	fmt.Fprintln(a.out, color.New(color.FgCyan).Sprint("Starting scraper..."))

	result, err := a.scrape.Scrape(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Fetched %d postings, %d new\n", result.Seen, result.Inserted)
	return nil
}

// Clear empties the staging area.
func (a *StagingAdapter) Clear(ctx context.Context) error {
	removed, err := a.staging.ClearStaging(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Cleared %d staged postings\n", removed)
	return nil
}
