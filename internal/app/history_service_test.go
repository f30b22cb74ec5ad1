package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/ports/secondary"
)

func TestListHistory(t *testing.T) {
	repo := &mockHistoryRepository{}
	svc := NewHistoryService(repo)
	ctx := context.Background()

	_ = repo.Create(ctx, &secondary.HistoryRecord{PostingID: 1, Action: "create", Origin: "shell"})
	_ = repo.Create(ctx, &secondary.HistoryRecord{PostingID: 2, Action: "create", Origin: "cli"})
	_ = repo.Create(ctx, &secondary.HistoryRecord{PostingID: 1, Action: "update", FieldName: "status", OldValue: "fetched", NewValue: "applied", Origin: "shell"})

	entries, err := svc.ListHistory(ctx, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Action != "update" || entries[1].NewValue != "applied" {
		t.Errorf("unexpected entry %+v", entries[1])
	}
}

func TestListHistory_InvalidID(t *testing.T) {
	svc := NewHistoryService(&mockHistoryRepository{})

	if _, err := svc.ListHistory(context.Background(), 0); !errors.Is(err, failure.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
