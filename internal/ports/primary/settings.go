package primary

import (
	"context"

	"github.com/example/jobtrack/internal/core/settings"
)

// SettingsService defines the primary port for the fetch settings.
type SettingsService interface {
	// GetSettings retrieves the active settings.
	GetSettings(ctx context.Context) (*settings.Settings, error)

	// UpdateSetting validates and writes a single field.
	UpdateSetting(ctx context.Context, field settings.Field, value string) (*settings.Settings, error)
}
