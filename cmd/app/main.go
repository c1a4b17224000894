package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Hotel Management API
// @version 1.0.0
// @description Rooms, guests and bookings for a single hotel.
// @BasePath /api
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg.Server.LogLevel)
	timezone.Init(cfg.App.Timezone)

	if err := helper.Prepare(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare database")
	}

	http := di.InitializeService()
	if err := http.Serve(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped unexpectedly")
	}
}
