package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message formats surfaced to clients. Tests compose the expected issue
// strings from these.
const (
	ErrRequired  = "is required"
	ErrNotBlank  = "must not be blank"
	ErrMinValue  = "must be at least %s"
	ErrMaxValue  = "must be at most %s"
	ErrMaxLength = "must be at most %s characters long"
	ErrOneOf     = "must be one of: %s"
	ErrInvalid   = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("notblank", validateNotBlank)

	return validator
}

// notblank rejects strings that are empty after trimming whitespace. The
// booking form uses it for the customer name: format rules (capitalization,
// digits) are a client-side nicety only and are deliberately not enforced
// here.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "notblank":
		return ErrNotBlank
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		if err.Kind().String() == "string" {
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	default:
		return ErrInvalid
	}
}
