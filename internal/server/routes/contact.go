package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/folio/internal/api/handlers"
	"github.com/osa911/folio/internal/api/middleware"
)

// SetupContactRoutes configures contact form routes
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler, m *Middleware) {
	submitLimit := middleware.RateLimitMiddleware(m.SubmitLimit)

	group := router.Group("/contact")
	{
		// One-shot submission for clients that keep form state themselves
		group.POST("/submit",
			submitLimit,
			m.Validation.ValidateContactRequest(),
			contact.Submit,
		)

		group.POST("/forms", contact.OpenForm)

		form := group.Group("/forms/:id", m.Validation.ValidateFormID())
		form.GET("", contact.GetForm)
		form.PUT("/fields/:field", m.Validation.ValidateFieldUpdate(), contact.UpdateField)
		form.POST("/submit", submitLimit, contact.SubmitForm)
		form.DELETE("", contact.CloseForm)
	}
}
