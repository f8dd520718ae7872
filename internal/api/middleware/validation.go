package middleware

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/api/dto/v1/contact"
	"github.com/osa911/folio/internal/api/sanitization"
	"github.com/osa911/folio/internal/api/validation"
	"github.com/osa911/folio/internal/utils"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct{}

// NewValidationMiddleware registers the custom binding validators and
// creates a new validation middleware
func NewValidationMiddleware() (*ValidationMiddleware, error) {
	if err := validation.RegisterBindingValidators(); err != nil {
		return nil, err
	}
	return &ValidationMiddleware{}, nil
}

// ValidateContactRequest validates a one-shot contact submission
func (m *ValidationMiddleware) ValidateContactRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.ContactRequest
		if err := bindSanitized(c, &req); err != nil {
			if details := validation.FormatValidationError(err); len(details) > 0 {
				utils.HandleValidationError(c, "Invalid contact form", details)
				return
			}
			utils.HandleAPIError(c, err, 400, common.ErrCodeBadRequest, "Invalid request body")
			return
		}

		c.Set(constants.ContextKeyContact, &req)
		c.Next()
	}
}

// ValidateFieldUpdate validates a single field update body
func (m *ValidationMiddleware) ValidateFieldUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.FieldUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if details := validation.FormatValidationError(err); len(details) > 0 {
				utils.HandleValidationError(c, "Invalid field value", details)
				return
			}
			utils.HandleAPIError(c, err, 400, common.ErrCodeBadRequest, "Invalid request body")
			return
		}

		c.Set(constants.ContextKeyFieldUpdate, &req)
		c.Next()
	}
}

// ValidateFormID parses the :id path parameter
func (m *ValidationMiddleware) ValidateFormID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.HandleAPIError(c, err, 404, common.ErrCodeNotFound, "Contact form not found")
			return
		}

		c.Set(constants.ContextKeyFormID, id)
		c.Next()
	}
}

// bindSanitized decodes a contact request, applies input sanitization and
// only then validates, so an email pasted with a trailing newline is accepted
// the way a browser would accept it.
func bindSanitized(c *gin.Context, req *contact.ContactRequest) error {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		return err
	}
	req.Email = sanitization.SanitizeEmail(req.Email)
	return binding.Validator.ValidateStruct(req)
}
