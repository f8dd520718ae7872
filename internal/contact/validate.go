package contact

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use once validators are registered
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	if err := RegisterValidators(v); err != nil {
		panic("contact: registering validators: " + err.Error())
	}
	return v
}

// RegisterValidators registers the custom validators used by contact forms
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("notblank", validateNotBlank)
}

// validateNotBlank fails for empty and whitespace-only strings
func validateNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Validate applies the required-field and email rules a browser enforces
// before the form may be submitted
func (f FormState) Validate() error {
	err := validate.Struct(f.Trimmed())
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}
