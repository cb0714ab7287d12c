package ports

import (
	"context"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// GroupRepository defines persistence operations for groups and memberships.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) (*domain.Group, error)
	// FindActiveByID returns the group only while it is active; soft-deleted
	// and unknown ids both yield ErrInvalidGroup.
	FindActiveByID(ctx context.Context, id string) (*domain.Group, error)
	// Deactivate soft-deletes an active group and returns the number of rows
	// flipped (0 when the group is already inactive or unknown).
	Deactivate(ctx context.Context, id string) (int64, error)
	// Delete physically removes a group. Used only to compensate a failed
	// creator-membership insert during group creation.
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.Group, error)
	// ListByUser returns the active groups the user belongs to.
	ListByUser(ctx context.Context, userID string) ([]*domain.Group, error)

	// AddMember inserts a membership row. The (groupID, userID) pair is
	// unique; a duplicate insert fails with *domain.ValidationError.
	AddMember(ctx context.Context, groupID, userID string) (*domain.Membership, error)
	// RemoveMember hard-deletes the matching membership and returns the
	// delete count.
	RemoveMember(ctx context.Context, groupID, userID string) (int64, error)
	// FindMembership returns (nil, nil) when the user is not a member.
	FindMembership(ctx context.Context, userID, groupID string) (*domain.Membership, error)
	ListMemberships(ctx context.Context, groupID string) ([]*domain.Membership, error)
}
