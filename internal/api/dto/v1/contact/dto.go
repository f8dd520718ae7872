package contact

import (
	"github.com/google/uuid"
	domain "github.com/osa911/folio/internal/contact"
)

// ContactRequest represents a one-shot contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"notblank,max=100"`
	Email   string `json:"email" binding:"notblank,email,max=255"`
	Message string `json:"message" binding:"notblank,max=5000"`
}

// FormState converts the request into the controller's form fields
func (r ContactRequest) FormState() domain.FormState {
	return domain.FormState{Name: r.Name, Email: r.Email, Message: r.Message}
}

// FieldUpdateRequest carries one keystroke-level field update
type FieldUpdateRequest struct {
	Value string `json:"value" binding:"max=5000"`
}

// FormResponse describes a form instance
type FormResponse struct {
	ID     uuid.UUID        `json:"id"`
	Form   domain.FormState `json:"form"`
	Status domain.Status    `json:"status"`
	View   domain.View      `json:"view"`
}

// NewFormResponse builds a FormResponse from a controller snapshot
func NewFormResponse(id uuid.UUID, snap domain.Snapshot) FormResponse {
	return FormResponse{ID: id, Form: snap.Form, Status: snap.Status, View: snap.View}
}

// ContactResponse represents the response after submitting a contact form
type ContactResponse struct {
	Message string        `json:"message"`
	Success bool          `json:"success"`
	Status  domain.Status `json:"status"`
	View    domain.View   `json:"view"`
}

// NewContactResponse builds the submit response for a final status
func NewContactResponse(status domain.Status) ContactResponse {
	return ContactResponse{
		Message: status.Message,
		Success: status.Kind == domain.StatusSuccess,
		Status:  status,
		View:    status.View(),
	}
}
