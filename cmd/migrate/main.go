package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	switch os.Args[1] {
	case helper.ActionUp:
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	case helper.ActionDown:
		if err := helper.Down(cfg); err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
	case helper.ActionDrop:
		if err := helper.Drop(cfg); err != nil {
			log.Fatal().Err(err).Msg("drop failed")
		}
	case helper.ActionStepUp:
		if err := helper.StepUp(cfg); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
