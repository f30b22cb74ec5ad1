package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/jobtrack/internal/core/settings"
	"github.com/example/jobtrack/internal/ports/primary"
)

// SettingsAdapter translates CLI operations to SettingsService calls.
type SettingsAdapter struct {
	service primary.SettingsService
	out     io.Writer
}

// NewSettingsAdapter creates a new SettingsAdapter with the given service.
func NewSettingsAdapter(service primary.SettingsService, out io.Writer) *SettingsAdapter {
	return &SettingsAdapter{
		service: service,
		out:     out,
	}
}

// Show prints the active settings.
func (a *SettingsAdapter) Show(ctx context.Context) error {
	current, err := a.service.GetSettings(ctx)
	if err != nil {
		return err
	}

	a.print(current)
	return nil
}

// Set changes one field and prints the result.
func (a *SettingsAdapter) Set(ctx context.Context, field settings.Field, value string) error {
	updated, err := a.service.UpdateSetting(ctx, field, value)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ %s set to %s\n", field, updated.Get(field))
	return nil
}

func (a *SettingsAdapter) print(s *settings.Settings) {
	fmt.Fprintln(a.out, "\nSettings:")
	for _, f := range settings.Fields {
		fmt.Fprintf(a.out, "  %-7s %s\n", f, s.Get(f))
	}
	fmt.Fprintln(a.out)
}
