// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/jobtrack/internal/core/posting"
	"github.com/example/jobtrack/internal/ports/primary"
)

// PostingAdapter is a thin adapter that translates CLI operations to the durable
// store services. It depends only on primary ports, enabling easy testing with mocks.
type PostingAdapter struct {
	postings  primary.PostingService
	promotion primary.PromotionService
	history   primary.HistoryService
	out       io.Writer
}

// NewPostingAdapter creates a new PostingAdapter with the given services.
func NewPostingAdapter(
	postings primary.PostingService,
	promotion primary.PromotionService,
	history primary.HistoryService,
	out io.Writer,
) *PostingAdapter {
	return &PostingAdapter{
		postings:  postings,
		promotion: promotion,
		history:   history,
		out:       out,
	}
}

// List lists all stored postings, most recently posted first.
func (a *PostingAdapter) List(ctx context.Context) error {
	postings, err := a.postings.ListPostings(ctx)
	if err != nil {
		return err
	}

	if len(postings) == 0 {
		fmt.Fprintln(a.out, "No stored postings found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Stage some with 'scrape', then store one:")
		fmt.Fprintln(a.out, "  move <id>")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tPOSITION\tLOCATION\tPOSTED\tSTATUS\tUPDATED\tLINK")
	fmt.Fprintln(w, "--\t-------\t--------\t--------\t------\t------\t-------\t----")
	for _, p := range postings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Company, 30),
			truncate(p.Position, 40),
			truncate(p.Location, 20),
			p.DatePosted,
			StatusColor(p.Status).Sprint(p.Status),
			p.LastUpdate,
			p.Link,
		)
	}
	w.Flush()
	return nil
}

// Show displays details for a single stored posting.
func (a *PostingAdapter) Show(ctx context.Context, id int64) (*primary.Posting, error) {
	p, err := a.postings.GetPosting(ctx, id)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nPosting: %d\n", p.ID)
	fmt.Fprintf(a.out, "Company:  %s\n", p.Company)
	fmt.Fprintf(a.out, "Position: %s\n", p.Position)
	fmt.Fprintf(a.out, "Location: %s\n", p.Location)
	fmt.Fprintf(a.out, "Link:     %s\n", color.New(color.FgBlue, color.Underline).Sprint(p.Link))
	fmt.Fprintf(a.out, "Posted:   %s\n", p.DatePosted)
	fmt.Fprintf(a.out, "Status:   %s\n", StatusColor(p.Status).Sprint(p.Status))
	if p.LastUpdate != "" {
		fmt.Fprintf(a.out, "Updated:  %s\n", p.LastUpdate)
	}
	if p.StagedID != 0 {
		fmt.Fprintf(a.out, "Staged:   %d\n", p.StagedID)
	}
	fmt.Fprintln(a.out)

	return p, nil
}

// Move promotes a staged posting into the durable store.
func (a *PostingAdapter) Move(ctx context.Context, stagingID int64) error {
	resp, err := a.promotion.Promote(ctx, stagingID)
	if err != nil {
		return fmt.Errorf("already stored or invalid id: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Stored staged posting %d as %d: %s at %s\n",
		stagingID, resp.PostingID, resp.Posting.Position, resp.Posting.Company)
	return nil
}

// Update sets the status of a stored posting.
func (a *PostingAdapter) Update(ctx context.Context, id int64, status posting.Status) error {
	err := a.postings.UpdateStatus(ctx, primary.UpdateStatusRequest{
		PostingID: id,
		Status:    status,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Posting %d is now %s\n", id, StatusColor(status).Sprint(status))
	return nil
}

// Delete deletes a stored posting.
func (a *PostingAdapter) Delete(ctx context.Context, id int64) error {
	// Get posting details before deleting (for output)
	p, err := a.postings.GetPosting(ctx, id)
	if err != nil {
		return err
	}

	if err := a.postings.DeletePosting(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted posting %d: %s at %s\n", p.ID, p.Position, p.Company)
	return nil
}

// History lists the audit trail of a stored posting.
func (a *PostingAdapter) History(ctx context.Context, id int64) error {
	entries, err := a.history.ListHistory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No history for posting %d.\n", id)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTION\tCHANGE\tORIGIN")
	fmt.Fprintln(w, "----\t------\t------\t------")
	for _, e := range entries {
		change := ""
		if e.FieldName != "" {
			change = fmt.Sprintf("%s: %s -> %s", e.FieldName, e.OldValue, e.NewValue)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt, e.Action, change, e.Origin)
	}
	w.Flush()
	return nil
}

// StatusColor returns the display color for a status.
func StatusColor(s posting.Status) *color.Color {
	switch s {
	case posting.StatusOffer:
		return color.New(color.FgGreen)
	case posting.StatusRejected:
		return color.New(color.FgRed)
	case posting.StatusInterview:
		return color.New(color.FgMagenta)
	case posting.StatusApplied:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgYellow)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
