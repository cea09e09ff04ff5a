package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankgen/internal/config"
	"github.com/tensorplex-labs/rankgen/internal/utils/logger"
	"github.com/tensorplex-labs/rankgen/pkg/rankapi"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting ranking server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	gen, err := cfg.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init generator")
	}

	server := rankapi.NewServer(&rankapi.ServerConfig{
		Host:      cfg.Host,
		Port:      cfg.Port,
		BodyLimit: cfg.BodyLimit,
	})
	rankapi.RegisterRoutes(server, gen, cfg.Precision)

	log.Info().Msg("Endpoints:")
	log.Info().Msgf("  POST %s", rankapi.RoutePath[rankapi.GenerateRequest]())
	log.Info().Msgf("  POST %s", rankapi.RoutePath[rankapi.DifferenceSearchRequest]())
	log.Info().Msgf("  GET %s", rankapi.HealthRoute)

	// shut down on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("Server stopped")
}
