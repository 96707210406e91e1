package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/domain"
)

const (
	defaultBase    = "https://itunes.apple.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (compatible; app-review-scraper)"
)

// Client fetches pages of the public customer-reviews RSS feed.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, timeout time.Duration, rps int) *Client {
	if base == "" {
		base = defaultBase
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

var _ domain.ReviewFeed = (*Client)(nil)

// FetchPage requests one 1-based page for an (app, storefront) pair and
// normalizes its entries. A non-200 status ends the storefront: the app may
// simply not be distributed there, so it is reported as an empty final page,
// never as an error. Transport failures are returned as errors.
func (c *Client) FetchPage(ctx context.Context, appID, country string, page int) (domain.Page, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Page{}, err
	}

	url := fmt.Sprintf("%s/%s/rss/customerreviews/page=%d/sortby=mostrecent/id=%s/json",
		c.base, strings.ToLower(country), page, appID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Page{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Page{}, ctx.Err()
		}
		observability.ObserveFeed(country, 0, time.Since(start))
		return domain.Page{}, err
	}
	defer resp.Body.Close()
	observability.ObserveFeed(country, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Debug().
			Str("storefront", strings.ToUpper(country)).
			Int("page", page).
			Int("status", resp.StatusCode).
			Msg("storefront closed the feed, treating as exhausted")
		return domain.Page{}, nil
	}

	var fp feedPage
	if err := json.NewDecoder(resp.Body).Decode(&fp); err != nil {
		return domain.Page{}, fmt.Errorf("decode feed: %w", err)
	}

	entries, err := fp.entries()
	if err != nil {
		return domain.Page{}, fmt.Errorf("feed entry container: %w", err)
	}

	out := domain.Page{Fetched: len(entries), HasNext: fp.hasNext()}
	for _, raw := range entries {
		rv, nerr := normalizeEntry(raw, country)
		if nerr != nil {
			out.Malformed++
			log.Warn().
				Str("storefront", strings.ToUpper(country)).
				Int("page", page).
				Err(nerr).
				Msg("skipping malformed feed entry")
			continue
		}
		out.Reviews = append(out.Reviews, rv)
	}
	observability.ObservePage(country, len(out.Reviews), out.Malformed)
	return out, nil
}
