package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/metrics"
	"github.com/osa911/folio/internal/relay"
	"github.com/osa911/folio/internal/service"
	"github.com/osa911/folio/internal/tasks"
	"github.com/osa911/folio/internal/telemetry"
)

// NewSender builds the instrumented EmailJS client described by cfg
func NewSender(cfg *config.Config) relay.Sender {
	opts := []relay.EmailJSOption{relay.WithEndpoint(cfg.EmailJSAPIURL)}
	if cfg.EmailJSPrivateKey != "" {
		opts = append(opts, relay.WithAccessToken(cfg.EmailJSPrivateKey))
	}
	return metrics.InstrumentSender(relay.NewEmailJSClient(opts...))
}

// ContactOptions maps cfg onto the options every form controller is built with
func ContactOptions(cfg *config.Config, logger *logging.Logger) contact.Options {
	return contact.Options{
		Credentials: relay.Credentials{
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
		},
		RecipientName: cfg.RecipientName,
		ResetAfter:    cfg.ResetAfter,
		Logger:        logger,
	}
}

// Start wires tracing, the contact service, the idle-form janitor and the
// HTTP server, and blocks until ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config) error {
	logger := logging.GetGlobalLogger()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		logger.Warn("EmailJS credentials not set (%s); submissions will fail with a configuration error",
			strings.Join(missing, ", "))
	}

	contactService := service.NewContactService(NewSender(cfg), ContactOptions(cfg, logger))

	// the janitor must also stop when the server fails on its own
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cleanup := tasks.NewFormCleanup(contactService, cfg.FormIdleTTL, cfg.SweepInterval)
	cleanup.Start(ctx)
	logger.Info("Started form cleanup task")

	srv, err := NewServer(cfg, contactService)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	err = srv.Run(ctx)
	cancel()
	<-cleanup.Done()
	return err
}
