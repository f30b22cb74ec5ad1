package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/jobtrack/internal/adapters/sqlite"
	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/settings"
)

func TestSettingsRepository_Get_Defaults(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	s, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *s != settings.Default() {
		t.Errorf("expected defaults, got %+v", *s)
	}
}

func TestSettingsRepository_UpdateField(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSettingsRepository(db)
	ctx := context.Background()

	tests := []struct {
		field settings.Field
		raw   string
	}{
		{settings.FieldSearch, "Werkstudent Software"},
		{settings.FieldRegion, "Hamburg"},
		{settings.FieldRadius, "50"},
		{settings.FieldAmount, "40"},
	}

	want := settings.Default()
	for _, tt := range tests {
		v, err := settings.ParseValue(tt.field, tt.raw)
		if err != nil {
			t.Fatalf("ParseValue(%s) failed: %v", tt.field, err)
		}
		if err := repo.UpdateField(ctx, v); err != nil {
			t.Fatalf("UpdateField(%s) failed: %v", tt.field, err)
		}
		want = want.Apply(v)

		got, err := repo.Get(ctx)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if *got != want {
			t.Errorf("after %s: expected %+v, got %+v", tt.field, want, *got)
		}
	}

	if n := countRows(t, db, "settings"); n != 1 {
		t.Errorf("expected 1 settings row, got %d", n)
	}
}

func TestSettingsRepository_UpdateField_UnknownField(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	err := repo.UpdateField(context.Background(), settings.Value{Field: "page", Text: "2"})
	if !errors.Is(err, failure.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSettingsRepository_Get_MissingRow(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	if _, err := db.Exec("DELETE FROM settings"); err != nil {
		t.Fatalf("failed to delete settings: %v", err)
	}

	_, err := repo.Get(context.Background())
	if !errors.Is(err, failure.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
}
