// Package cli wires the command-line surface. Everything in here is thin
// glue around the aggregator; the core contracts live in internal/app and
// internal/domain.
package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"appstore_reviews/internal/shared"
)

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "scraper APP_ID",
		Short: "Download public App Store customer reviews for an app",
		Long: `scraper walks the public customer-reviews RSS feed of one or many
regional App Store storefronts for a given numeric app id (the trackId from
the App Store URL), paginating each storefront to exhaustion with a
politeness pause between pages, and saves the normalized reviews as JSON,
newest first.

By default one file per storefront is written:  <APP_ID>-<cc>.json
With --single-file a merged, deduplicated file: <APP_ID>-all.json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No app id: print help and exit cleanly.
			if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
				return cmd.Help()
			}
			opts.appID = strings.TrimSpace(args[0])

			cfg := shared.Load()
			if cmd.Flags().Changed("pause") {
				cfg.Pause = opts.pause
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = opts.workers
			}
			return run(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.countries, "country", "c", nil,
		"2-letter storefront code, repeatable; omitted means all storefronts")
	cmd.Flags().StringVar(&opts.outDir, "output-folder", ".",
		"destination directory for the JSON files")
	cmd.Flags().BoolVarP(&opts.singleFile, "single-file", "s", false,
		"write one merged <APP_ID>-all.json instead of per-storefront files")
	cmd.Flags().DurationVar(&opts.pause, "pause", time.Second,
		"politeness pause between successive feed pages")
	cmd.Flags().IntVar(&opts.workers, "workers", 1,
		"storefronts fetched in parallel; pages within a storefront stay sequential")
	return cmd
}

type runOptions struct {
	appID      string
	countries  []string
	outDir     string
	singleFile bool
	pause      time.Duration
	workers    int
}
