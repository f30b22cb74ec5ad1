package secondary

import (
	"context"

	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/core/settings"
)

// PostingSource defines the secondary port for the external job search.
type PostingSource interface {
	// Fetch retrieves raw postings matching the given settings.
	Fetch(ctx context.Context, params settings.Settings) ([]ingest.Raw, error)
}
