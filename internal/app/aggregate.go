package app

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/domain"
)

// Report is the per-storefront outcome of a run.
type Report struct {
	Storefront string
	Reviews    []domain.Review
	Pages      int
	Malformed  int
	Duplicates int
	Err        error
}

// Aggregator runs the pagination loop once per storefront and merges the
// results into one deduplicated collection. It is the only owner of the
// seen-ids set; the per-storefront loops never touch shared state.
type Aggregator struct {
	svc      *FetchService
	workers  int
	progress *Progress
}

// NewAggregator builds an aggregator. workers bounds how many storefronts
// are fetched at once; 1 reproduces the strictly sequential reference
// behavior. Pages within one storefront are always sequential regardless.
func NewAggregator(svc *FetchService, workers int, progress *Progress) *Aggregator {
	if workers <= 0 {
		workers = 1
	}
	return &Aggregator{svc: svc, workers: workers, progress: progress}
}

// Run fetches every requested storefront and merges the results.
// Storefronts are walked in sorted order. With workers > 1 several
// storefronts may be in flight at once, but each lands in its own slot and
// the merge always iterates slots in sorted storefront order, so
// first-seen-wins dedup stays deterministic no matter which storefront
// finished first. One storefront's failure never aborts the run.
func (a *Aggregator) Run(ctx context.Context, appID string, storefronts []string) ([]domain.Review, []Report) {
	codes := append([]string(nil), storefronts...)
	sort.Strings(codes)
	if a.progress != nil {
		a.progress.Begin(len(codes))
	}

	slots := make([]Report, len(codes))
	sem := semaphore.NewWeighted(int64(a.workers))
	var wg sync.WaitGroup
	for i, cc := range codes {
		if err := sem.Acquire(ctx, 1); err != nil {
			slots[i] = Report{Storefront: cc, Err: &domain.StorefrontError{Storefront: cc, Err: err}}
			continue
		}
		wg.Add(1)
		go func(i int, cc string) {
			defer wg.Done()
			defer sem.Release(1)

			if a.progress != nil {
				a.progress.Start(cc)
			}
			rs, st, err := a.svc.FetchStorefront(ctx, appID, cc)
			slots[i] = Report{
				Storefront: cc,
				Reviews:    rs,
				Pages:      st.Pages,
				Malformed:  st.Malformed,
				Err:        err,
			}
		}(i, cc)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var merged []domain.Review
	reports := make([]Report, 0, len(codes))
	for i := range slots {
		rep := slots[i]
		for _, rv := range rep.Reviews {
			if _, dup := seen[rv.ID]; dup {
				rep.Duplicates++
				continue
			}
			seen[rv.ID] = struct{}{}
			merged = append(merged, rv)
		}
		if rep.Duplicates > 0 {
			observability.ObserveDuplicates(rep.Storefront, rep.Duplicates)
			log.Info().
				Str("storefront", rep.Storefront).
				Int("duplicates", rep.Duplicates).
				Msg("duplicate reviews dropped from merged collection")
		}
		if rep.Err != nil {
			log.Warn().
				Str("storefront", rep.Storefront).
				Int("collected", len(rep.Reviews)).
				Err(rep.Err).
				Msg("storefront fetch failed, keeping partial results")
		} else {
			log.Info().
				Str("storefront", rep.Storefront).
				Int("pages", rep.Pages).
				Int("collected", len(rep.Reviews)).
				Int("malformed", rep.Malformed).
				Msg("storefront done")
		}
		if a.progress != nil {
			a.progress.Done(rep)
		}
		reports = append(reports, rep)
	}

	domain.SortNewestFirst(merged)
	return merged, reports
}
