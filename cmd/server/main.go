package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/server"
	"github.com/osa911/folio/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Configure and get logger
	if err := logging.InitLogger(cfg.Logging()); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting folio %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, cfg); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
