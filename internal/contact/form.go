package contact

import (
	"strings"
)

// Field names accepted by UpdateField. They match the form input names.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// FormState holds the three user-entered fields. The length caps match
// the one-shot request binding in the API.
type FormState struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"notblank,email,max=255"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (f FormState) Trimmed() FormState {
	return FormState{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Message: strings.TrimSpace(f.Message),
	}
}

// set assigns value to the named field
func (f *FormState) set(field, value string) error {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldMessage:
		f.Message = value
	default:
		return &UnknownFieldError{Field: field}
	}
	return nil
}
