package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// errorResponse is the canonical envelope for business and validation errors.
// Errors is always present, matching the API contract, even when empty.
type errorResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// fallbackResponse is the catch-all body for unexpected errors; it carries no
// errors array.
type fallbackResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// businessErrors are the sentinels rendered verbatim as a 400 envelope.
var businessErrors = []error{
	domain.ErrInvalidCredentials,
	domain.ErrUserNotFound,
	domain.ErrInvalidGroup,
	domain.ErrNoActiveGroup,
	domain.ErrMembershipNotFound,
	domain.ErrNotAMember,
	domain.ErrInvalidMessage,
}

// NewHTTPErrorHandler returns the single error boundary for the API:
//   - 404 from the router → {"message": "Not valid routes"}.
//   - Validation failures → 400 envelope with the per-field breakdown.
//   - Known business errors → 400 envelope with the business message.
//   - Anything else is logged and answered with a generic 400.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = resolveError(err, log, c)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := clampStatus(he.Code)
		if code == http.StatusNotFound {
			return c.JSON(code, messageResponse{Message: "Not valid routes"})
		}
		if code == http.StatusUnauthorized {
			return c.JSON(code, messageResponse{Message: fmt.Sprintf("%v", he.Message)})
		}
		return c.JSON(code, errorResponse{
			Code:    code,
			Message: fmt.Sprintf("%v", he.Message),
			Errors:  []domain.FieldError{},
		})
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields := ve.Fields
		if fields == nil {
			fields = []domain.FieldError{}
		}
		return c.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: ve.Message,
			Errors:  fields,
		})
	}

	for _, be := range businessErrors {
		if errors.Is(err, be) {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: be.Error(),
				Errors:  []domain.FieldError{},
			})
		}
	}

	// Unexpected error: log the real cause, answer with the generic body.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return c.JSON(http.StatusBadRequest, fallbackResponse{
		Code:    http.StatusBadRequest,
		Message: "Unable to process your request, please try again",
	})
}

// clampStatus keeps explicit codes inside the valid HTTP range; anything out
// of range collapses to 500.
func clampStatus(code int) int {
	if code >= 100 && code < 600 {
		return code
	}
	return http.StatusInternalServerError
}
