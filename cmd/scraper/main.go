package main

import (
	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/adapters/observability"
	"appstore_reviews/internal/cli"
	"appstore_reviews/internal/shared"
)

func main() {
	// console in dev, JSON otherwise
	log.Logger = observability.NewLogger(shared.Load().AppEnv)
	cli.Execute()
}
