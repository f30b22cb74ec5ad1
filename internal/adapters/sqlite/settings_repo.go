package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/jobtrack/internal/core/failure"
	"github.com/example/jobtrack/internal/core/settings"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// SettingsRepository implements secondary.SettingsRepository with SQLite.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite settings repository.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// settingsColumns maps each field to its column. Only these names reach SQL.
var settingsColumns = map[settings.Field]string{
	settings.FieldSearch: "search",
	settings.FieldRegion: "region",
	settings.FieldRadius: "radius",
	settings.FieldAmount: "amount",
}

// Get retrieves the single settings row.
// A missing row is a storage failure: schema initialization always seeds it.
func (r *SettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	s := &settings.Settings{}
	err := r.db.QueryRowContext(ctx,
		"SELECT search, region, radius, amount FROM settings WHERE id = 1",
	).Scan(&s.Search, &s.Region, &s.Radius, &s.Amount)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settings row missing: %w", failure.ErrStorage)
	}
	if err != nil {
		return nil, classify("failed to get settings", err)
	}

	return s, nil
}

// UpdateField writes exactly one validated field.
func (r *SettingsRepository) UpdateField(ctx context.Context, value settings.Value) error {
	column, ok := settingsColumns[value.Field]
	if !ok {
		return fmt.Errorf("failed to update settings: %w: unknown setting %q", failure.ErrInvalidArgument, value.Field)
	}

	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE settings SET %s = ? WHERE id = 1", column),
		value.Any(),
	)
	if err != nil {
		return classify("failed to update settings", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("settings row missing: %w", failure.ErrStorage)
	}

	return nil
}

// Ensure SettingsRepository implements the interface.
var _ secondary.SettingsRepository = (*SettingsRepository)(nil)
