// Package posting contains the pure business logic for durable postings.
// This is part of the Functional Core - no I/O, only pure functions.
package posting

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/jobtrack/internal/core/failure"
)

// Status represents the application status of a durable posting.
type Status string

const (
	StatusFetched   Status = "fetched"
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusRead      Status = "read"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{
	StatusFetched,
	StatusRead,
	StatusApplied,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

// DateLayout is the layout of date_posted and last_update values.
const DateLayout = "2006-01-02"

// ParseStatus converts user input to a Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q (valid: %s)", failure.ErrInvalidArgument, s, StatusList())
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// StatusList returns the valid statuses joined for usage messages.
func StatusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// InitialStatus returns the status assigned to every new durable posting.
func InitialStatus() Status {
	return StatusFetched
}

// StatusChange is the value object produced by a status update.
type StatusChange struct {
	NewStatus  Status
	LastUpdate string
}

// ApplyStatusChange captures the rule that last_update is refreshed whenever
// the status is written. The caller passes the current time.
func ApplyStatusChange(newStatus Status, now time.Time) StatusChange {
	return StatusChange{
		NewStatus:  newStatus,
		LastUpdate: Today(now),
	}
}

// Today formats now as a last_update date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
