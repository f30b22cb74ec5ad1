package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/ports/primary"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// ScrapeServiceImpl implements the ScrapeService interface.
type ScrapeServiceImpl struct {
	settingsRepo secondary.SettingsRepository
	stagingRepo  secondary.StagingRepository
	source       secondary.PostingSource
	logger       *slog.Logger
}

// NewScrapeService creates a new ScrapeService with injected dependencies.
func NewScrapeService(
	settingsRepo secondary.SettingsRepository,
	stagingRepo secondary.StagingRepository,
	source secondary.PostingSource,
	logger *slog.Logger,
) *ScrapeServiceImpl {
	return &ScrapeServiceImpl{
		settingsRepo: settingsRepo,
		stagingRepo:  stagingRepo,
		source:       source,
		logger:       logger,
	}
}

// Scrape runs one fetch cycle with the current settings.
// Nothing is staged when the fetch fails.
func (s *ScrapeServiceImpl) Scrape(ctx context.Context) (*primary.ScrapeResult, error) {
	params, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	s.logger.Info("fetching postings",
		"search", params.Search, "region", params.Region,
		"radius", params.Radius, "amount", params.Amount)

	raws, err := s.source.Fetch(ctx, *params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch postings: %w", err)
	}

	seen, inserted, err := s.stagingRepo.IngestMany(ctx, ingest.NormalizeAll(raws))
	if err != nil {
		return nil, fmt.Errorf("failed to stage postings: %w", err)
	}

	s.logger.Info("fetch cycle complete", "seen", seen, "inserted", inserted)

	return &primary.ScrapeResult{
		Seen:     seen,
		Inserted: inserted,
	}, nil
}

// Ensure ScrapeServiceImpl implements the interface.
var _ primary.ScrapeService = (*ScrapeServiceImpl)(nil)
