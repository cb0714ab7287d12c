package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Failures come back as a
// *domain.ValidationError so the error boundary renders the per-field
// breakdown.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	fields := make([]domain.FieldError, 0, len(ve))
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msg := fieldError(fe)
		fields = append(fields, domain.FieldError{Field: strings.ToLower(fe.Field()), Message: msg})
		msgs = append(msgs, msg)
	}

	return &domain.ValidationError{
		Message: strings.Join(msgs, "; "),
		Fields:  fields,
	}
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "containsany":
		return field + " must contain at least one special character"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
