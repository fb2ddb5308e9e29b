package main

import (
	"flag"
	"os"

	"github.com/dreamcanvas/server/dreamservice"
	"github.com/dreamcanvas/server/internal/config"
	"github.com/dreamcanvas/server/internal/logger"
)

func main() {
	// Optional build-target flag override (local | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud)")
	flag.Parse()

	log := logger.New("dream-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *buildTarget != "" {
		cfg.BuildTarget = *buildTarget
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid build-target override")
		}
	}

	if err := dreamservice.Run(cfg); err != nil {
		os.Exit(1)
	}
}
