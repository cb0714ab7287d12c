package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupchat/messaging-api/internal/api/middleware"
	"github.com/groupchat/messaging-api/internal/core/domain"
)

// ctxUser extracts the identity attached by the Auth middleware. A missing
// user means the route was wired without the gate; fail closed with the
// standard 401 body rather than panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Please authenticate")
	}
	return user, nil
}
