package main

import (
	"log"

	"github.com/pantrywatch/pantrywatch/internal/cli"
	"github.com/pantrywatch/pantrywatch/internal/config"
	"github.com/pantrywatch/pantrywatch/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.WithComponent("main").Debug().Msg("starting pantrywatch")
	cli.Execute(cfg)
}
