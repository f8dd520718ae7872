package routes

import (
	"github.com/osa911/folio/internal/api/handlers"
	"github.com/osa911/folio/internal/api/middleware"
)

// Handlers contains all the route handlers
type Handlers struct {
	Health  *handlers.HealthHandler
	Contact *handlers.ContactHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	// SubmitLimit applies to routes that reach the email relay
	SubmitLimit middleware.RateLimitConfig
}
