package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appstore_reviews/internal/app"
	"appstore_reviews/internal/domain"
)

// storefrontFeed serves a fixed single page per storefront code.
type storefrontFeed struct {
	pages map[string]domain.Page
	errs  map[string]error
}

func (f *storefrontFeed) FetchPage(ctx context.Context, appID, country string, page int) (domain.Page, error) {
	if err := f.errs[country]; err != nil {
		return domain.Page{}, err
	}
	return f.pages[country], nil
}

func page(rs ...domain.Review) domain.Page {
	return domain.Page{Reviews: rs, Fetched: len(rs)}
}

func crev(t *testing.T, id, cc, date string) domain.Review {
	t.Helper()
	return domain.Review{ID: id, Country: cc, Date: tstamp(t, date)}
}

func newAggregator(feed domain.ReviewFeed, workers int) *app.Aggregator {
	return app.NewAggregator(app.NewFetchService(feed, 0), workers, nil)
}

func TestAggregator_FirstStorefrontWinsDedup(t *testing.T) {
	// AU sorts before US, so AU is processed first and keeps the shared id.
	feed := &storefrontFeed{pages: map[string]domain.Page{
		"AU": page(
			crev(t, "shared", "AU", "2024-05-02T10:00:00+00:00"),
			crev(t, "au-only", "AU", "2024-05-01T10:00:00+00:00"),
		),
		"US": page(
			crev(t, "shared", "US", "2024-05-02T10:00:00+00:00"),
			crev(t, "us-only", "US", "2024-05-03T10:00:00+00:00"),
		),
	}}

	merged, reports := newAggregator(feed, 1).Run(context.Background(), "123", []string{"US", "AU"})

	require.Len(t, merged, 3)
	byID := map[string]domain.Review{}
	for _, rv := range merged {
		byID[rv.ID] = rv
	}
	assert.Equal(t, "AU", byID["shared"].Country, "first processed storefront wins")

	require.Len(t, reports, 2)
	assert.Equal(t, "AU", reports[0].Storefront, "reports follow sorted storefront order")
	assert.Equal(t, "US", reports[1].Storefront)
	assert.Equal(t, 0, reports[0].Duplicates)
	assert.Equal(t, 1, reports[1].Duplicates, "duplicate is reported, not silently dropped")
	assert.Len(t, reports[1].Reviews, 2, "per-storefront list keeps the duplicate")
}

func TestAggregator_StorefrontErrorDoesNotAbortRun(t *testing.T) {
	boom := errors.New("tls handshake failed")
	feed := &storefrontFeed{
		pages: map[string]domain.Page{
			"US": page(crev(t, "a", "US", "2024-05-01T10:00:00+00:00")),
		},
		errs: map[string]error{"DE": boom},
	}

	merged, reports := newAggregator(feed, 1).Run(context.Background(), "123", []string{"US", "DE"})

	require.Len(t, merged, 1)
	require.Len(t, reports, 2)
	assert.Equal(t, "DE", reports[0].Storefront)
	require.Error(t, reports[0].Err)
	assert.ErrorIs(t, reports[0].Err, boom)
	assert.NoError(t, reports[1].Err)
}

func TestAggregator_MergedListGloballySorted(t *testing.T) {
	feed := &storefrontFeed{pages: map[string]domain.Page{
		"FR": page(crev(t, "old", "FR", "2024-04-01T10:00:00+00:00")),
		"US": page(crev(t, "new", "US", "2024-05-01T10:00:00+00:00")),
	}}

	merged, _ := newAggregator(feed, 1).Run(context.Background(), "123", []string{"FR", "US"})

	require.Len(t, merged, 2)
	assert.Equal(t, "new", merged[0].ID)
	assert.Equal(t, "old", merged[1].ID)
}

func TestAggregator_ParallelWorkersSameResult(t *testing.T) {
	feed := &storefrontFeed{pages: map[string]domain.Page{
		"AU": page(
			crev(t, "shared", "AU", "2024-05-02T10:00:00+00:00"),
			crev(t, "au-only", "AU", "2024-05-01T10:00:00+00:00"),
		),
		"FR": page(crev(t, "fr-only", "FR", "2024-05-04T10:00:00+00:00")),
		"US": page(
			crev(t, "shared", "US", "2024-05-02T10:00:00+00:00"),
			crev(t, "us-only", "US", "2024-05-03T10:00:00+00:00"),
		),
	}}
	codes := []string{"US", "FR", "AU"}

	sequential, seqReports := newAggregator(feed, 1).Run(context.Background(), "123", codes)
	parallel, parReports := newAggregator(feed, 3).Run(context.Background(), "123", codes)

	assert.Equal(t, sequential, parallel, "fan-out must not change merge order or dedup outcome")
	require.Len(t, parReports, len(seqReports))
	for i := range seqReports {
		assert.Equal(t, seqReports[i].Storefront, parReports[i].Storefront)
		assert.Equal(t, seqReports[i].Duplicates, parReports[i].Duplicates)
	}
}
