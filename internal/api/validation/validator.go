package validation

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/contact"
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)
	return contact.RegisterValidators(v)
}

// RegisterBindingValidators installs the custom validators on gin's binding
// engine so `binding:"notblank"` tags work in ShouldBindJSON
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return RegisterValidators(v)
}

// FormatValidationError formats validation errors into a user-friendly response
func FormatValidationError(err error) []common.ValidationError {
	var errs []common.ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errs = append(errs, common.ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: contact.DescribeFieldError(e),
			})
		}
	}
	return errs
}
