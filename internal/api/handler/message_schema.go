package handler

type sendMessageRequest struct {
	Text    string `json:"text" validate:"required"`
	GroupID string `json:"groupId" validate:"required"`
}
