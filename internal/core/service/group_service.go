package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/groupchat/messaging-api/internal/core/domain"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

// GroupService implements group lifecycle and the membership authority.
// Membership is re-checked against the store on every call; there is no
// caching layer.
type GroupService struct {
	groups ports.GroupRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewGroupService(groups ports.GroupRepository, users ports.UserRepository, logger zerolog.Logger) *GroupService {
	return &GroupService{groups: groups, users: users, logger: logger}
}

// Create makes an active group and grants the creator membership. When the
// membership insert fails, the freshly created group is removed again so no
// ownerless group survives.
func (s *GroupService) Create(ctx context.Context, name, creatorID string) (*domain.Group, error) {
	now := time.Now().UTC()
	group, err := s.groups.Create(ctx, &domain.Group{
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.groups.AddMember(ctx, group.ID, creatorID); err != nil {
		if delErr := s.groups.Delete(ctx, group.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("group_id", group.ID).Msg("failed to roll back orphaned group")
		}
		return nil, err
	}

	s.logger.Info().Str("group_id", group.ID).Str("creator_id", creatorID).Msg("group created")
	return group, nil
}

// Get returns an active group with its member list. A soft-deleted group is
// indistinguishable from an unknown id.
func (s *GroupService) Get(ctx context.Context, id string) (*ports.GroupDetail, error) {
	group, err := s.groups.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	memberships, err := s.groups.ListMemberships(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]ports.MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		u, ok := byID[m.UserID]
		if !ok {
			continue
		}
		members = append(members, ports.MemberInfo{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		})
	}

	return &ports.GroupDetail{Group: group, Users: members}, nil
}

func (s *GroupService) ListAll(ctx context.Context) ([]*domain.Group, error) {
	return s.groups.ListAll(ctx)
}

func (s *GroupService) ListForUser(ctx context.Context, userID string) ([]*domain.Group, error) {
	return s.groups.ListByUser(ctx, userID)
}

// Delete soft-deletes the group. The rows stay; the group and its messages
// simply stop being visible to membership and listing queries.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	count, err := s.groups.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNoActiveGroup
	}

	s.logger.Info().Str("group_id", id).Msg("group deactivated")
	return nil
}

// AddMember rejects duplicates with an explicit pre-check; the repository's
// unique index backs it up for the narrow concurrent window.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID string) (*domain.Membership, error) {
	existing, err := s.groups.FindMembership(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateMembership()
	}

	return s.groups.AddMember(ctx, groupID, userID)
}

func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) error {
	count, err := s.groups.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (s *GroupService) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	m, err := s.groups.FindMembership(ctx, userID, groupID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}
