package apperror

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

func formatFieldName(s string) string {
	// recipient_phone -> Recipient Phone
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

func messageForTag(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// MapValidationErrors turns validator output into a single INVALID_INPUT
// error carrying every violation. Nothing short-circuits: a request with four
// bad fields comes back with four messages.
func MapValidationErrors(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	details := make([]string, 0, len(errs))
	for _, e := range errs {
		field := formatFieldName(e.Field())
		details = append(details, messageForTag(field, e.Tag(), e.Param()))
	}

	return ErrInvalidInput.WithDetails(details...)
}
