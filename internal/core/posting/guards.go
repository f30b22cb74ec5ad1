package posting

import (
	"fmt"

	"github.com/example/jobtrack/internal/core/failure"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error // failure sentinel wrapped by Error()
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Kind == nil {
		return fmt.Errorf("%s", r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

// UpdateStatusContext provides context for status update guards.
type UpdateStatusContext struct {
	PostingID int64
	MaxID     int64
	NewStatus Status
}

// CanUpdateStatus evaluates whether a status update may be attempted.
// Rules:
// - ID must be positive
// - ID must not exceed the highest durable id (no storage lookup needed)
// - Status must be one of the enumerated values
func CanUpdateStatus(ctx UpdateStatusContext) GuardResult {
	if ctx.PostingID <= 0 {
		return GuardResult{
			Reason: fmt.Sprintf("invalid posting id %d", ctx.PostingID),
			Kind:   failure.ErrInvalidArgument,
		}
	}

	if ctx.PostingID > ctx.MaxID {
		return GuardResult{
			Reason: fmt.Sprintf("posting %d out of range (highest id is %d)", ctx.PostingID, ctx.MaxID),
			Kind:   failure.ErrNotFound,
		}
	}

	if !ctx.NewStatus.Valid() {
		return GuardResult{
			Reason: fmt.Sprintf("unknown status %q (valid: %s)", ctx.NewStatus, StatusList()),
			Kind:   failure.ErrInvalidArgument,
		}
	}

	return GuardResult{Allowed: true}
}

// PromoteContext provides context for promotion guards.
type PromoteContext struct {
	StagingID     int64
	MaxStagingID  int64
	StagingExists bool
	LinkStored    bool // link already present in the durable store
}

// CanPromote evaluates whether a staged posting can be copied into the durable store.
// Rules are checked in promotion order:
// - ID must not exceed the highest staging id
// - Staged posting must exist
// - Its link must not already be stored
func CanPromote(ctx PromoteContext) GuardResult {
	if ctx.StagingID <= 0 || ctx.StagingID > ctx.MaxStagingID {
		return GuardResult{
			Reason: fmt.Sprintf("staged posting %d out of range (highest id is %d)", ctx.StagingID, ctx.MaxStagingID),
			Kind:   failure.ErrNotFound,
		}
	}

	if !ctx.StagingExists {
		return GuardResult{
			Reason: fmt.Sprintf("staged posting %d not found", ctx.StagingID),
			Kind:   failure.ErrNotFound,
		}
	}

	if ctx.LinkStored {
		return GuardResult{
			Reason: fmt.Sprintf("staged posting %d is already stored", ctx.StagingID),
			Kind:   failure.ErrDuplicateLink,
		}
	}

	return GuardResult{Allowed: true}
}
