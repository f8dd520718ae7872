package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/handlers"
	"github.com/osa911/folio/internal/api/middleware"
	"github.com/osa911/folio/internal/config"
	"github.com/osa911/folio/internal/logging"
	"github.com/osa911/folio/internal/server/routes"
	"github.com/osa911/folio/internal/service"
)

const shutdownTimeout = 15 * time.Second

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	contact *service.ContactService
	logger  *logging.Logger
}

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, contact *service.ContactService) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Gin's own logger is replaced by middleware.RequestLogger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.RemoveExtraSlash = true
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	logger := logging.GetGlobalLogger()

	validation, err := middleware.NewValidationMiddleware()
	if err != nil {
		return nil, err
	}

	routes.SetupGlobalMiddleware(router, logger, routes.GlobalConfig{
		ServiceName:    cfg.ServiceName,
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit: middleware.RateLimitConfig{
			RPS:   float64(cfg.RateLimitRPS),
			Burst: cfg.RateLimitBurst,
		},
	})

	routes.Setup(router, &routes.Handlers{
		Health:  handlers.NewHealthHandler(contact),
		Contact: handlers.NewContactHandler(contact),
	}, &routes.Middleware{
		Validation: validation,
		// 5 requests per hour per client, bursting up to 5
		SubmitLimit: middleware.RateLimitConfig{
			RPS:       5.0 / 3600,
			Burst:     5,
			PerClient: true,
		},
	})

	return &Server{
		router:  router,
		cfg:     cfg,
		contact: contact,
		logger:  logger,
	}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully and
// tears down every open contact form
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.contact.Shutdown()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.contact.Shutdown()
	return err
}
