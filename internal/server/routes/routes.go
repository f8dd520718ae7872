package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/middleware"
	"github.com/osa911/folio/internal/logging"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// GlobalConfig configures the middleware applied to every route
type GlobalConfig struct {
	ServiceName    string
	Production     bool
	AllowedOrigins []string
	RateLimit      middleware.RateLimitConfig
}

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h.Health)

	v1 := router.Group("/api/v1")
	SetupContactRoutes(v1, h.Contact, m)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, cfg GlobalConfig) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Production, cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.LimitRequestBody(middleware.DefaultMaxBodySize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit))
}
