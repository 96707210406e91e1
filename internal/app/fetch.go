package app

import (
	"context"
	"strings"
	"time"

	"appstore_reviews/internal/domain"
)

// FetchService walks a single storefront's feed to exhaustion.
type FetchService struct {
	feed  domain.ReviewFeed
	pause time.Duration
}

// NewFetchService builds the per-storefront pagination loop. pause is the
// politeness delay between successive page requests; tests pass zero.
func NewFetchService(feed domain.ReviewFeed, pause time.Duration) *FetchService {
	return &FetchService{feed: feed, pause: pause}
}

// StorefrontStats summarizes one storefront walk.
type StorefrontStats struct {
	Pages     int
	Collected int
	Malformed int
}

// FetchStorefront pages through one storefront starting at page 1.
// Termination conditions, in order of precedence:
//   - a fetch error ends the walk; whatever was accumulated is still
//     returned alongside the error (terminal, no retry);
//   - a page with zero raw entries ends the walk even when the feed still
//     advertises a next link, otherwise an inconsistent feed could keep the
//     loop alive forever;
//   - no next link ends the walk normally.
//
// The returned reviews are stable-sorted newest first.
func (s *FetchService) FetchStorefront(ctx context.Context, appID, country string) ([]domain.Review, StorefrontStats, error) {
	var (
		out []domain.Review
		st  StorefrontStats
	)
	fail := func(err error) ([]domain.Review, StorefrontStats, error) {
		domain.SortNewestFirst(out)
		st.Collected = len(out)
		return out, st, &domain.StorefrontError{Storefront: strings.ToUpper(country), Err: err}
	}

	for page := 1; ; page++ {
		p, err := s.feed.FetchPage(ctx, appID, country, page)
		if err != nil {
			return fail(err)
		}
		st.Pages++
		st.Malformed += p.Malformed
		out = append(out, p.Reviews...)

		if p.Fetched == 0 || !p.HasNext {
			break
		}
		if !sleepCtx(ctx, s.pause) {
			return fail(ctx.Err())
		}
	}

	domain.SortNewestFirst(out)
	st.Collected = len(out)
	return out, st, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
