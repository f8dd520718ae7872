package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/osa911/folio/internal/api/constants"
	"github.com/osa911/folio/internal/api/dto/common"
	dto "github.com/osa911/folio/internal/api/dto/v1/contact"
	"github.com/osa911/folio/internal/api/sanitization"
	"github.com/osa911/folio/internal/api/validation"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/service"
	"github.com/osa911/folio/internal/utils"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// OpenForm creates a form instance for one page view
func (h *ContactHandler) OpenForm(c *gin.Context) {
	id, ctrl := h.contactService.OpenForm()
	utils.HandleCreated(c, dto.NewFormResponse(id, ctrl.Snapshot()))
}

// GetForm returns the current fields, status and view of a form
func (h *ContactHandler) GetForm(c *gin.Context) {
	id, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	utils.HandleSuccess(c, dto.NewFormResponse(id, ctrl.Snapshot()))
}

// UpdateField assigns one field of a form
func (h *ContactHandler) UpdateField(c *gin.Context) {
	id, ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	req, ok := c.MustGet(constants.ContextKeyFieldUpdate).(*dto.FieldUpdateRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid field data format")
		return
	}

	field := c.Param("field")
	if err := ctrl.UpdateField(field, sanitization.SanitizeField(field, req.Value)); err != nil {
		h.handleControllerError(c, err)
		return
	}
	utils.HandleSuccess(c, dto.NewFormResponse(id, ctrl.Snapshot()))
}

// SubmitForm submits a form instance. Relay and configuration failures are
// part of the form's state, so they are reported with 200 and an error status.
func (h *ContactHandler) SubmitForm(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}

	status, err := h.contactService.SubmitForm(c.Request.Context(), id)
	if err != nil {
		h.handleControllerError(c, err)
		return
	}
	utils.HandleSuccess(c, dto.NewContactResponse(status))
}

// CloseForm tears a form instance down
func (h *ContactHandler) CloseForm(c *gin.Context) {
	id, ok := formID(c)
	if !ok {
		return
	}
	if err := h.contactService.CloseForm(id); err != nil {
		h.handleControllerError(c, err)
		return
	}
	utils.HandleNoContent(c)
}

// Submit runs a one-shot submission from a validated request body
func (h *ContactHandler) Submit(c *gin.Context) {
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Contact data not found in context")
		return
	}
	req, ok := contactData.(*dto.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid contact data format")
		return
	}

	status, err := h.contactService.SubmitOnce(c.Request.Context(), req.FormState())
	if err != nil {
		h.handleControllerError(c, err)
		return
	}

	switch status.Reason {
	case contact.ReasonConfiguration:
		utils.HandleSubmissionError(c, http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable, status.Message, dto.NewContactResponse(status))
	case contact.ReasonRelay, contact.ReasonUnknown:
		utils.HandleSubmissionError(c, http.StatusBadGateway, common.ErrCodeBadGateway, status.Message, dto.NewContactResponse(status))
	default:
		utils.HandleSuccess(c, dto.NewContactResponse(status))
	}
}

func (h *ContactHandler) lookup(c *gin.Context) (uuid.UUID, *contact.Controller, bool) {
	id, ok := formID(c)
	if !ok {
		return uuid.Nil, nil, false
	}
	ctrl, err := h.contactService.Form(id)
	if err != nil {
		h.handleControllerError(c, err)
		return uuid.Nil, nil, false
	}
	return id, ctrl, true
}

func formID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.MustGet(constants.ContextKeyFormID).(uuid.UUID)
	if !ok {
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.ErrCodeInternalServer, "Invalid form id format")
	}
	return id, ok
}

func (h *ContactHandler) handleControllerError(c *gin.Context, err error) {
	var validationErr *contact.ValidationError
	var unknownField *contact.UnknownFieldError

	switch {
	case errors.As(err, &validationErr):
		utils.HandleValidationError(c, "Invalid contact form", validation.FormatValidationError(validationErr))
	case errors.As(err, &unknownField):
		utils.HandleAPIError(c, err, http.StatusBadRequest, common.ErrCodeBadRequest, "Unknown form field")
	case errors.Is(err, contact.ErrSubmissionInProgress):
		utils.HandleAPIError(c, err, http.StatusConflict, common.ErrCodeConflict, "A submission is already in progress")
	case errors.Is(err, contact.ErrClosed):
		utils.HandleAPIError(c, err, http.StatusGone, common.ErrCodeGone, "Contact form is closed")
	case errors.Is(err, service.ErrNotFound):
		utils.HandleAPIError(c, err, http.StatusNotFound, common.ErrCodeNotFound, "Contact form not found")
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.ErrCodeInternalServer, "Failed to process contact form")
	}
}
