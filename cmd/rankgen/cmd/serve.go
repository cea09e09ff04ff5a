package cmd

import (
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/rankgen/internal/config"
	"github.com/tensorplex-labs/rankgen/pkg/rankapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP ranking service",
	Long: `Serve starts the HTTP service. Engine and server settings come from the
environment (SERVER_PORT, RANK_METHOD, RANDOM_SEED, ...) and an optional .env
file; --host and --port override the listen address.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default SERVER_HOST)")
	serveCmd.Flags().Int("port", 0, "listen port (default SERVER_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}

	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	server := rankapi.NewServer(&rankapi.ServerConfig{
		Host:      cfg.Host,
		Port:      cfg.Port,
		BodyLimit: cfg.BodyLimit,
	})
	rankapi.RegisterRoutes(server, gen, cfg.Precision)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("address", server.Address()).
		Str("rank_method", cfg.RankMethod).
		Int("max_size", cfg.MaxSize).
		Msg("rankgen service starting")

	return server.Start(ctx)
}
