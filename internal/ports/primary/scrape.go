package primary

import "context"

// ScrapeService defines the primary port for fetch cycles.
type ScrapeService interface {
	// Scrape fetches postings with the current settings and stages the new ones.
	Scrape(ctx context.Context) (*ScrapeResult, error)
}

// ScrapeResult reports the outcome of one fetch cycle.
type ScrapeResult struct {
	Seen     int
	Inserted int
}
