package ports

import (
	"context"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// MemberInfo is the member view embedded in group detail responses.
type MemberInfo struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// GroupDetail is the full group view: the group plus its member list.
type GroupDetail struct {
	Group *domain.Group `json:"group"`
	Users []MemberInfo  `json:"users"`
}

// GroupService defines group and membership use cases. Membership checks are
// re-evaluated fresh per request; nothing is cached.
type GroupService interface {
	// Create makes a new active group and grants the creator membership. If
	// the membership insert fails the group is removed again rather than left
	// ownerless.
	Create(ctx context.Context, name, creatorID string) (*domain.Group, error)
	// Get returns an active group with its members; soft-deleted and unknown
	// ids both fail with ErrInvalidGroup.
	Get(ctx context.Context, id string) (*GroupDetail, error)
	ListAll(ctx context.Context) ([]*domain.Group, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Group, error)
	// Delete soft-deletes; fails with ErrNoActiveGroup when nothing flips.
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, groupID, userID string) (*domain.Membership, error)
	// RemoveMember fails with ErrMembershipNotFound when no row matches.
	RemoveMember(ctx context.Context, groupID, userID string) error
	IsMember(ctx context.Context, userID, groupID string) (bool, error)
}
