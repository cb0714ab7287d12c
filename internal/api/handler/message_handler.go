package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/groupchat/messaging-api/internal/api/metrics"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

// MessageHandler exposes message and like endpoints.
type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send handles POST /message. The sender must belong to the target group.
//
// @Summary      Send a message to a group
// @Tags         message
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      200   {object}  domain.Message
// @Failure      400   {object}  errorResponse
// @Router       /message [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
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

	msg, err := h.messages.Send(c.Request().Context(), user.ID, req.GroupID, req.Text)
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusOK, msg)
}

// ListGroup handles GET /message/:groupId, newest first, senders inlined.
func (h *MessageHandler) ListGroup(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	msgs, err := h.messages.ListGroup(c.Request().Context(), user.ID, c.Param("groupId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Delete handles DELETE /message/:id. Only the sender can delete their message.
func (h *MessageHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.messages.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Like handles POST /message/:id/like-message. Liking twice is a no-op that
// returns the existing like.
func (h *MessageHandler) Like(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	like, err := h.messages.Like(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return err
	}

	metrics.LikesTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, like)
}

// Unlike handles DELETE /message/:id/like-message.
func (h *MessageHandler) Unlike(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.messages.Unlike(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}

	metrics.LikesTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Likes handles GET /message/:id/like-message.
func (h *MessageHandler) Likes(c echo.Context) error {
	likes, err := h.messages.Likes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}
