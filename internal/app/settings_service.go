package app

import (
	"context"
	"fmt"

	"github.com/example/jobtrack/internal/core/settings"
	"github.com/example/jobtrack/internal/ports/primary"
	"github.com/example/jobtrack/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	settingsRepo secondary.SettingsRepository
}

// NewSettingsService creates a new SettingsService with injected dependencies.
func NewSettingsService(settingsRepo secondary.SettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the active settings.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*settings.Settings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return current, nil
}

// UpdateSetting validates and writes a single field, returning the new settings.
func (s *SettingsServiceImpl) UpdateSetting(ctx context.Context, field settings.Field, value string) (*settings.Settings, error) {
	field, err := settings.ParseField(string(field))
	if err != nil {
		return nil, err
	}

	v, err := settings.ParseValue(field, value)
	if err != nil {
		return nil, err
	}

	if err := s.settingsRepo.UpdateField(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", field, err)
	}

	return s.GetSettings(ctx)
}

// Ensure SettingsServiceImpl implements the interface.
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
