package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupchat/messaging-api/internal/api/metrics"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

// AuthHandler exposes the user-facing endpoints: signup, login, profile, and
// the admin-gated user management operations.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup handles POST /auth/signup. Self-registered users are admins.
//
// @Summary      Sign up a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Signup(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusOK, user)
}

// Login handles POST /auth/login. A bad email and a bad password are both
// answered with 400 "Invalid credentials".
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.LoginResult
// @Failure      400   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, result)
}

// AddUser handles POST /auth/user (admin only). Created users are standard.
func (h *AuthHandler) AddUser(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.AdminCreate(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /auth/user/:id (admin only).
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// ListUsers handles GET /auth/user with an optional searchText query filter.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context(), c.QueryParam("searchText"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Profile handles GET /auth/profile for the authenticated user.
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
