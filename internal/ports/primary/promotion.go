package primary

import "context"

// PromotionService defines the primary port for moving staged postings
// into the durable store.
type PromotionService interface {
	// Promote copies a staged posting into the durable store.
	// The staged posting is kept; promoting it again fails on the stored link.
	Promote(ctx context.Context, stagingID int64) (*PromoteResponse, error)
}

// PromoteResponse contains the result of a promotion.
type PromoteResponse struct {
	StagingID int64
	PostingID int64
	Posting   *Posting
}
