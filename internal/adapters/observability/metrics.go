package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	FeedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appreviews", Name: "feed_requests_total", Help: "Feed page requests."},
		[]string{"storefront", "status"},
	)
	FeedLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "appreviews", Name: "feed_request_duration_seconds",
			Help:    "Feed page request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"storefront"},
	)
	ReviewsCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appreviews", Name: "reviews_collected_total", Help: "Reviews normalized from the feed."},
		[]string{"storefront"},
	)
	MalformedEntries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appreviews", Name: "malformed_entries_total", Help: "Feed entries skipped as malformed."},
		[]string{"storefront"},
	)
	DuplicateReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "appreviews", Name: "duplicate_reviews_total", Help: "Reviews dropped by cross-storefront dedup."},
		[]string{"storefront"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(FeedRequests, FeedLatency, ReviewsCollected, MalformedEntries, DuplicateReviews)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr in the background. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

// ObserveFeed records one feed page request. status 0 means a transport error.
func ObserveFeed(storefront string, status int, dur time.Duration) {
	cc := strings.ToUpper(storefront)
	FeedRequests.WithLabelValues(cc, strconv.Itoa(status)).Inc()
	FeedLatency.WithLabelValues(cc).Observe(dur.Seconds())
}

func ObservePage(storefront string, reviews, malformed int) {
	cc := strings.ToUpper(storefront)
	ReviewsCollected.WithLabelValues(cc).Add(float64(reviews))
	if malformed > 0 {
		MalformedEntries.WithLabelValues(cc).Add(float64(malformed))
	}
}

func ObserveDuplicates(storefront string, n int) {
	if n <= 0 {
		return
	}
	DuplicateReviews.WithLabelValues(strings.ToUpper(storefront)).Add(float64(n))
}
