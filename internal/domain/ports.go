package domain

import "context"

// Page is one batch of a storefront feed after normalization.
type Page struct {
	Reviews []Review
	// Fetched counts raw entries on the page before normalization;
	// a page with Fetched == 0 ends the storefront walk.
	Fetched   int
	Malformed int
	HasNext   bool
}

// ReviewFeed fetches one feed page for an (app, storefront) pair.
// Implementations must treat a non-success upstream status as the end of
// the storefront (empty page, no next), not as an error.
type ReviewFeed interface {
	FetchPage(ctx context.Context, appID, country string, page int) (Page, error)
}

// ReviewSink is an optional persistence target for completed results.
// The in-memory result set is always fully formed before a sink is
// invoked, so a sink failure can never corrupt it.
type ReviewSink interface {
	SaveReviews(ctx context.Context, appID string, rs []Review) error
	LogMiss(ctx context.Context, appID, country, reason string) error
}
