package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors for the controller
var (
	ErrConfigurationMissing = errors.New(ConfigurationMessage)
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrClosed               = errors.New("contact form is closed")
	ErrInvalidForm          = errors.New("invalid contact form")
)

// UnknownFieldError is returned by UpdateField for a name outside the form
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown form field %q", e.Field)
}

// ValidationError blocks a submission before anything is sent
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, DescribeFieldError(fe))
	}
	return ErrInvalidForm.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidForm
}

// DescribeFieldError renders a validator failure as a short sentence
func DescribeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
