package domain

import "time"

// Message is a post inside a group. Only members of the target group may
// create one, and only the original sender may soft-delete it.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	GroupID   string    `json:"group_id"`
	SenderID  string    `json:"sender_id"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageLike records that a user liked a message. Likes use find-or-create
// semantics, so at most one row exists per (MessageID, UserID).
type MessageLike struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
