// Package settings contains the pure business logic for the fetch settings record.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/jobtrack/internal/core/failure"
)

// Field names a column of the settings row.
type Field string

const (
	FieldSearch Field = "search"
	FieldRegion Field = "region"
	FieldRadius Field = "radius"
	FieldAmount Field = "amount"
)

// Fields lists every recognized settings field.
var Fields = []Field{FieldSearch, FieldRegion, FieldRadius, FieldAmount}

// Defaults seeded once at schema initialization.
const (
	DefaultSearch = "Softwareentwickler"
	DefaultRegion = "Kiel"
	DefaultRadius = 25
	DefaultAmount = 20
)

// MaxAmount is the page size cap accepted by the job search API.
const MaxAmount = 100

// Settings is the single parameter set for a fetch cycle.
type Settings struct {
	Search string
	Region string
	Radius int
	Amount int
}

// Default returns the seeded settings.
func Default() Settings {
	return Settings{
		Search: DefaultSearch,
		Region: DefaultRegion,
		Radius: DefaultRadius,
		Amount: DefaultAmount,
	}
}

// ParseField converts user input to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown setting %q (valid: search, region, radius, amount)", failure.ErrInvalidArgument, s)
}

// IsNumeric reports whether the field stores an integer.
func (f Field) IsNumeric() bool {
	return f == FieldRadius || f == FieldAmount
}

// Value is a validated settings value ready for persistence.
type Value struct {
	Field Field
	Text  string
	Int   int
}

// Any returns the value in the representation stored in the column.
func (v Value) Any() any {
	if v.Field.IsNumeric() {
		return v.Int
	}
	return v.Text
}

// ParseValue validates raw input for a field.
// Rules:
// - search and region must be non-empty
// - radius must be a non-negative integer
// - amount must be an integer between 1 and MaxAmount
func ParseValue(f Field, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	switch f {
	case FieldSearch, FieldRegion:
		if raw == "" {
			return Value{}, fmt.Errorf("%w: %s must not be empty", failure.ErrInvalidArgument, f)
		}
		return Value{Field: f, Text: raw}, nil
	case FieldRadius:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Value{}, fmt.Errorf("%w: radius must be a non-negative integer, got %q", failure.ErrInvalidArgument, raw)
		}
		return Value{Field: f, Int: n}, nil
	case FieldAmount:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxAmount {
			return Value{}, fmt.Errorf("%w: amount must be an integer between 1 and %d, got %q", failure.ErrInvalidArgument, MaxAmount, raw)
		}
		return Value{Field: f, Int: n}, nil
	default:
		return Value{}, fmt.Errorf("%w: unknown setting %q", failure.ErrInvalidArgument, f)
	}
}

// Apply returns s with the single field in v replaced.
func (s Settings) Apply(v Value) Settings {
	switch v.Field {
	case FieldSearch:
		s.Search = v.Text
	case FieldRegion:
		s.Region = v.Text
	case FieldRadius:
		s.Radius = v.Int
	case FieldAmount:
		s.Amount = v.Int
	}
	return s
}

// Get returns the display value of a field.
func (s Settings) Get(f Field) string {
	switch f {
	case FieldSearch:
		return s.Search
	case FieldRegion:
		return s.Region
	case FieldRadius:
		return strconv.Itoa(s.Radius)
	case FieldAmount:
		return strconv.Itoa(s.Amount)
	}
	return ""
}
