package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/groupchat/messaging-api/internal/api/metrics"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

// GroupHandler exposes group and membership endpoints.
type GroupHandler struct {
	groups ports.GroupService
}

func NewGroupHandler(groups ports.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// groupDetailResponse flattens the group and its member list into one object.
type groupDetailResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	IsActive  bool               `json:"is_active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Users     []ports.MemberInfo `json:"users"`
}

// Create handles POST /group. The creator is added as the first member.
//
// @Summary      Create a group
// @Tags         group
// @Accept       json
// @Produce      json
// @Param        body  body      createGroupRequest  true  "Group name"
// @Success      200   {object}  domain.Group
// @Failure      400   {object}  errorResponse
// @Router       /group [post]
func (h *GroupHandler) Create(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	group, err := h.groups.Create(c.Request().Context(), req.Name, user.ID)
	if err != nil {
		return err
	}

	metrics.GroupsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, group)
}

// List handles GET /group and returns every group, active or not.
func (h *GroupHandler) List(c echo.Context) error {
	groups, err := h.groups.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// ListMine handles GET /group/me and returns the caller's groups.
func (h *GroupHandler) ListMine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	groups, err := h.groups.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// Get handles GET /group/:id with the member list inlined.
func (h *GroupHandler) Get(c echo.Context) error {
	detail, err := h.groups.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, groupDetailResponse{
		ID:        detail.Group.ID,
		Name:      detail.Group.Name,
		IsActive:  detail.Group.IsActive,
		CreatedAt: detail.Group.CreatedAt,
		UpdatedAt: detail.Group.UpdatedAt,
		Users:     detail.Users,
	})
}

// Delete handles DELETE /group/:id. Soft delete, open to any member.
func (h *GroupHandler) Delete(c echo.Context) error {
	if err := h.groups.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// AddUser handles POST /group/:id/add-user.
func (h *GroupHandler) AddUser(c echo.Context) error {
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	membership, err := h.groups.AddMember(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return err
	}

	metrics.MembershipChangesTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, membership)
}

// RemoveUser handles POST /group/:id/remove-user.
func (h *GroupHandler) RemoveUser(c echo.Context) error {
	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.groups.RemoveMember(c.Request().Context(), c.Param("id"), req.UserID); err != nil {
		return err
	}

	metrics.MembershipChangesTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
