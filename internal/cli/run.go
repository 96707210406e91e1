package cli

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	httpserver "appstore_reviews/internal/adapters/http_server"
	"appstore_reviews/internal/adapters/itunes"
	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/app"
	"appstore_reviews/internal/domain"
	"appstore_reviews/internal/shared"
	"appstore_reviews/internal/storage/jsonfile"
	mysqlrepo "appstore_reviews/internal/storage/mysql"
)

func run(ctx context.Context, cfg shared.Config, opts runOptions) error {
	// Validation happens before any network activity; an unknown code is
	// fatal to the whole invocation.
	codes, err := domain.ValidateStorefronts(opts.countries)
	if err != nil {
		return err
	}

	client := itunes.New(cfg.FeedBase, cfg.HTTPTimeout, cfg.FeedRPS)
	svc := app.NewFetchService(client, cfg.Pause)
	progress := app.NewProgress()
	agg := app.NewAggregator(svc, cfg.Workers, progress)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)
	if cfg.StatusAddr != "" {
		srv := httpserver.New()
		srv.MountHandlers(&httpserver.Handlers{Progress: progress})
		srv.Mount("/metrics", observability.MetricsHandler(reg))
		srv.Start(cfg.StatusAddr)
	}

	log.Info().
		Str("app_id", opts.appID).
		Int("storefronts", len(codes)).
		Dur("pause", cfg.Pause).
		Int("workers", cfg.Workers).
		Msg("fetch starting")

	merged, reports := agg.Run(ctx, opts.appID, codes)

	w := jsonfile.New(opts.outDir)
	if opts.singleFile {
		path, werr := w.WriteMerged(opts.appID, merged)
		if werr != nil {
			return fmt.Errorf("write merged output: %w", werr)
		}
		log.Info().Int("reviews", len(merged)).Str("file", path).Msg("merged reviews saved")
	} else {
		for _, rep := range reports {
			path, werr := w.WriteStorefront(opts.appID, rep.Storefront, rep.Reviews)
			if werr != nil {
				return fmt.Errorf("write %s output: %w", rep.Storefront, werr)
			}
			log.Info().
				Str("storefront", rep.Storefront).
				Int("reviews", len(rep.Reviews)).
				Str("file", path).
				Msg("storefront reviews saved")
		}
	}

	if cfg.MySQLDSN != "" {
		// Best effort: the files above are already on disk and the in-memory
		// result is complete, so a sink failure must not fail the run.
		if serr := saveToMySQL(ctx, cfg.MySQLDSN, opts.appID, merged, reports); serr != nil {
			log.Error().Err(serr).Msg("mysql sink failed")
		}
	}

	var dups, malformed, failed int
	for _, rep := range reports {
		dups += rep.Duplicates
		malformed += rep.Malformed
		if rep.Err != nil {
			failed++
		}
	}
	log.Info().
		Int("merged", len(merged)).
		Int("duplicates", dups).
		Int("malformed", malformed).
		Int("failed_storefronts", failed).
		Msg("done")
	return nil
}

func saveToMySQL(ctx context.Context, dsn, appID string, merged []domain.Review, reports []app.Report) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return err
	}

	repo := mysqlrepo.New(db)
	if err := repo.Init(ctx); err != nil {
		return err
	}
	if err := repo.SaveReviews(ctx, appID, merged); err != nil {
		return err
	}
	for _, rep := range reports {
		if rep.Err == nil {
			continue
		}
		if err := repo.LogMiss(ctx, appID, rep.Storefront, rep.Err.Error()); err != nil {
			return err
		}
	}
	return nil
}
