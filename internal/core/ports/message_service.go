package ports

import (
	"context"
	"time"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// MessageView is a message enriched with its sender, as returned by the list
// endpoint. Sender is nil when the account no longer resolves.
type MessageView struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	GroupID   string      `json:"group_id"`
	SenderID  string      `json:"sender_id"`
	CreatedAt time.Time   `json:"created_at"`
	Sender    *MemberInfo `json:"user,omitempty"`
}

// LikeView is a like enriched with the liking user.
type LikeView struct {
	ID        string      `json:"id"`
	MessageID string      `json:"message_id"`
	UserID    string      `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
	User      *MemberInfo `json:"user,omitempty"`
}

// MessageService defines messaging and like use cases. Send and ListGroup
// require current group membership; Delete requires message ownership.
type MessageService interface {
	// Send fails with ErrNotAMember when the sender does not belong to the
	// target group.
	Send(ctx context.Context, senderID, groupID, text string) (*domain.Message, error)
	// ListGroup returns the group's messages newest first. An inactive group
	// yields an empty list, not an error.
	ListGroup(ctx context.Context, userID, groupID string) ([]MessageView, error)
	// Delete soft-deletes a message the caller sent. A foreign or unknown
	// message id fails with ErrInvalidMessage either way.
	Delete(ctx context.Context, messageID, senderID string) error

	// Like is find-or-create: liking twice returns the existing like.
	Like(ctx context.Context, messageID, userID string) (*domain.MessageLike, error)
	// Unlike fails with ErrInvalidMessage when no like row matches.
	Unlike(ctx context.Context, messageID, userID string) error
	Likes(ctx context.Context, messageID string) ([]LikeView, error)
}
