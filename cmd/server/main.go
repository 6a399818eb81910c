package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eventatlas/eventatlas/internal/config"
	"github.com/eventatlas/eventatlas/internal/driver"
	"github.com/eventatlas/eventatlas/internal/server"
	"github.com/eventatlas/eventatlas/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfgPath).Msg("config file not loaded, using defaults")
		cfg = config.Default()
	}

	// Env overrides win over the file.
	if uri := os.Getenv("GRAPH_URI"); uri != "" {
		cfg.Graph.URI = uri
	}
	if user := os.Getenv("GRAPH_USER"); user != "" {
		cfg.Graph.User = user
	}
	if pass := os.Getenv("GRAPH_PASSWORD"); pass != "" {
		cfg.Graph.Password = pass
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	d, err := driver.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to graph database")
	}
	defer d.Close(context.Background())

	if err := d.BuildIndices(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to build indices")
	}

	srv := server.NewServer(store.New(d), cfg)
	r := srv.SetupRouter()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
