package main

import (
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/industrial-ai-dashboard/internal/devbackend"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging()

	fixtures, err := devbackend.LoadFixtures(config.DevFixtures())
	if err != nil {
		log.Fatal().Err(err).Msg("fixtures load failed")
	}

	app := devbackend.New(devbackend.NewStore(fixtures))

	addr := config.DevBackendAddr()
	log.Info().Str("addr", addr).Int("equipment", len(fixtures.Equipment)).Msg("dev backend listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
