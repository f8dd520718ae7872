package sanitization

import (
	"strings"

	"github.com/osa911/folio/internal/contact"
)

// SanitizeEmail applies the value sanitization a browser performs on an
// email input: line breaks are removed and surrounding whitespace trimmed.
// Case is preserved, the local part of an address may be case sensitive.
func SanitizeEmail(input string) string {
	email := strings.NewReplacer("\r", "", "\n", "").Replace(input)
	return strings.TrimSpace(email)
}

// SanitizeField sanitizes value according to the form field it is assigned to.
// Name and message are kept verbatim.
func SanitizeField(field, value string) string {
	if field == contact.FieldEmail {
		return SanitizeEmail(value)
	}
	return value
}
