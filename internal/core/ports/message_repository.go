package ports

import (
	"context"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// MessageRepository defines persistence operations for messages and likes.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// ListByGroup returns the group's non-deleted messages, newest first.
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Message, error)
	// SoftDelete marks the message deleted only when senderID matches the
	// original sender; returns the number of rows matched. An already deleted
	// message still matches, so repeat deletes by the sender succeed.
	SoftDelete(ctx context.Context, messageID, senderID string) (int64, error)

	// FindLike returns (nil, nil) when no like exists for the pair.
	FindLike(ctx context.Context, messageID, userID string) (*domain.MessageLike, error)
	CreateLike(ctx context.Context, like *domain.MessageLike) (*domain.MessageLike, error)
	// RemoveLike hard-deletes the matching like and returns the delete count.
	RemoveLike(ctx context.Context, messageID, userID string) (int64, error)
	// ListLikes returns the message's likes, newest first.
	ListLikes(ctx context.Context, messageID string) ([]*domain.MessageLike, error)
}
