package handler

type createGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

type memberRequest struct {
	UserID string `json:"userId" validate:"required"`
}
