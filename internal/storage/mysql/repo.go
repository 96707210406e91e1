package mysql

import (
	"context"
	"database/sql"
	"strings"

	"appstore_reviews/internal/domain"
)

// Repo is an optional relational sink for completed runs. It only ever
// receives a fully-formed result set, after the JSON output is written.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ domain.ReviewSink = (*Repo)(nil)

// Init creates the schema if it does not exist yet.
func (r *Repo) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createReviewsSQL); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, createMissesSQL)
	return err
}

// SaveReviews upserts a batch keyed by (app_id, review_id), so re-running a
// fetch refreshes rows instead of duplicating them.
func (r *Repo) SaveReviews(ctx context.Context, appID string, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*11)
	for _, rv := range rs {
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?)")
		args = append(args,
			appID,
			rv.ID,
			rv.Author,
			rv.Version,
			rv.Rating,
			rv.Title,
			rv.Content,
			rv.VoteCount,
			rv.VoteSum,
			rv.Date.UTC(),
			rv.Country,
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LogMiss records a storefront that could not be fetched to completion.
func (r *Repo) LogMiss(ctx context.Context, appID, country, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, appID, country, reason)
	return err
}
