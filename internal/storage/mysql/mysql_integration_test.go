//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"appstore_reviews/internal/domain"
	mysqlrepo "appstore_reviews/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest pool: %v", err)
	}
	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=secret",
			"MYSQL_DATABASE=reviews_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql container: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })
	_ = res.Expire(300)

	dsn := fmt.Sprintf("root:secret@tcp(localhost:%s)/reviews_test?parseTime=true&loc=UTC",
		res.GetPort("3306/tcp"))

	var db *sql.DB
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		var oerr error
		db, oerr = sql.Open("mysql", dsn)
		if oerr != nil {
			return oerr
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("mysql never became ready: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleReviews(t *testing.T) []domain.Review {
	t.Helper()
	mk := func(id, date string, rating int) domain.Review {
		ts, err := domain.ParseTimestamp(date)
		if err != nil {
			t.Fatalf("parse %q: %v", date, err)
		}
		return domain.Review{
			ID: id, Author: "carol", Version: "3.1", Rating: rating,
			Title: "ok", Content: "fine", VoteCount: 1, VoteSum: 1,
			Date: ts, Country: "US",
		}
	}
	return []domain.Review{
		mk("rv-1", "2024-05-02T08:00:00-07:00", 5),
		mk("rv-2", "2024-05-01T08:00:00-07:00", 3),
	}
}

func TestRepo_SaveReviewsIdempotent(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	repo := mysqlrepo.New(db)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	rs := sampleReviews(t)
	if err := repo.SaveReviews(ctx, "123", rs); err != nil {
		t.Fatalf("first save: %v", err)
	}
	// re-running the same fetch must refresh rows, not duplicate them
	rs[0].Rating = 1
	if err := repo.SaveReviews(ctx, "123", rs); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE app_id = ?`, "123").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	var rating int
	if err := db.QueryRowContext(ctx,
		`SELECT rating FROM reviews WHERE app_id = ? AND review_id = ?`, "123", "rv-1").Scan(&rating); err != nil {
		t.Fatalf("select rating: %v", err)
	}
	if rating != 1 {
		t.Fatalf("upsert did not refresh rating, got %d", rating)
	}
}

func TestRepo_LogMiss(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	repo := mysqlrepo.New(db)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := repo.LogMiss(ctx, "123", "DE", "storefront DE: connection reset"); err != nil {
		t.Fatalf("log miss: %v", err)
	}

	var reason string
	if err := db.QueryRowContext(ctx,
		`SELECT reason FROM fetch_misses WHERE app_id = ? AND country = ?`, "123", "DE").Scan(&reason); err != nil {
		t.Fatalf("select miss: %v", err)
	}
	if reason == "" {
		t.Fatalf("empty reason recorded")
	}
}
