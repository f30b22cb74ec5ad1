package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/ingest"
	"github.com/example/jobtrack/internal/core/settings"
)

func TestScrape_StagesNewPostings(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()
	svc.source.raws = []ingest.Raw{
		{RefNr: "10001-A", Company: "Acme", Title: "Werkstudent", Published: "2026-10-01"},
		{Company: "Globex", Occupation: "Softwareentwickler", ExternalURL: "https://globex.example/jobs/7", Published: "2026-10-02T08:00:00Z"},
		{RefNr: "10001-A", Company: "Acme", Title: "Werkstudent", Published: "2026-10-01"},
		{Company: "No Link GmbH"},
	}

	result, err := svc.scrape.Scrape(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Seen != 4 {
		t.Errorf("expected 4 seen, got %d", result.Seen)
	}
	if result.Inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", result.Inserted)
	}

	staged, err := svc.staging.ListStaged(ctx)
	if err != nil {
		t.Fatalf("ListStaged failed: %v", err)
	}
	if len(staged) != 2 {
		t.Fatalf("expected 2 staged postings, got %d", len(staged))
	}
	if staged[0].Link != ingest.DetailURLPrefix+"10001-A" {
		t.Errorf("expected detail page link, got %q", staged[0].Link)
	}
	if staged[1].Position != "Softwareentwickler" || staged[1].DatePosted != "2026-10-02" {
		t.Errorf("unexpected normalization %+v", staged[1])
	}
}

func TestScrape_RepeatedCycleInsertsNothing(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()
	svc.source.raws = []ingest.Raw{{RefNr: "1"}, {RefNr: "2"}}

	if _, err := svc.scrape.Scrape(ctx); err != nil {
		t.Fatalf("first scrape failed: %v", err)
	}
	result, err := svc.scrape.Scrape(ctx)
	if err != nil {
		t.Fatalf("second scrape failed: %v", err)
	}
	if result.Seen != 2 || result.Inserted != 0 {
		t.Errorf("expected 2 seen and 0 inserted, got %d and %d", result.Seen, result.Inserted)
	}
}

func TestScrape_UsesCurrentSettings(t *testing.T) {
	svc := newTestServices()
	ctx := context.Background()

	if _, err := svc.settings.UpdateSetting(ctx, settings.FieldRegion, "Hamburg"); err != nil {
		t.Fatalf("UpdateSetting failed: %v", err)
	}
	if _, err := svc.scrape.Scrape(ctx); err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if svc.source.lastParams.Region != "Hamburg" {
		t.Errorf("expected region Hamburg, got %q", svc.source.lastParams.Region)
	}
	if svc.source.lastParams.Search != settings.DefaultSearch {
		t.Errorf("expected default search, got %q", svc.source.lastParams.Search)
	}
}

func TestScrape_FetchErrorStagesNothing(t *testing.T) {
	svc := newTestServices()
	svc.source.raws = []ingest.Raw{{RefNr: "1"}}
	svc.source.err = errors.New("connection refused")

	_, err := svc.scrape.Scrape(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(svc.stagingRepo.staged) != 0 {
		t.Errorf("expected nothing staged, got %d", len(svc.stagingRepo.staged))
	}
}

func TestScrape_SettingsErrorSkipsFetch(t *testing.T) {
	svc := newTestServices()
	svc.settingsRepo.getErr = failure.ErrStorage

	_, err := svc.scrape.Scrape(context.Background())
	if !errors.Is(err, failure.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if svc.source.calls != 0 {
		t.Errorf("expected no fetch, got %d calls", svc.source.calls)
	}
}

func TestScrape_StagingError(t *testing.T) {
	svc := newTestServices()
	svc.source.raws = []ingest.Raw{{RefNr: "1"}}
	svc.stagingRepo.ingestErr = failure.ErrStorage

	_, err := svc.scrape.Scrape(context.Background())
	if !errors.Is(err, failure.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}
