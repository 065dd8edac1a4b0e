package main

import (
	"context"
	"dashboard/config"
	"dashboard/di"
	"dashboard/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := di.InitializeSeeder().Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
}
