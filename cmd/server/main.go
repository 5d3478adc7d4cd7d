package main

import (
	"flag"

	"go.uber.org/zap"

	"github.com/open-ecommerce/helptext-sub000/internal/config"
	"github.com/open-ecommerce/helptext-sub000/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to JSON config file (absolute)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		panic(err)
	}
	defer logger.Info("Server shutting down")

	// Setup and start server
	srv, err := SetupServer(cfg)
	if err != nil {
		logger.Fatal("Failed to setup server", zap.Error(err))
	}

	if err := StartServer(srv); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
