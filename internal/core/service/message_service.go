package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/groupchat/messaging-api/internal/core/domain"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

// MessageService implements messaging inside groups plus the like authority.
type MessageService struct {
	messages ports.MessageRepository
	groups   ports.GroupRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewMessageService(
	messages ports.MessageRepository,
	groups ports.GroupRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{messages: messages, groups: groups, users: users, logger: logger}
}

// requireMembership gates posting and reading on current group membership.
func (s *MessageService) requireMembership(ctx context.Context, userID, groupID string) error {
	m, err := s.groups.FindMembership(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotAMember
	}
	return nil
}

func (s *MessageService) Send(ctx context.Context, senderID, groupID, text string) (*domain.Message, error) {
	if err := s.requireMembership(ctx, senderID, groupID); err != nil {
		return nil, err
	}

	message, err := s.messages.Create(ctx, &domain.Message{
		Text:      text,
		GroupID:   groupID,
		SenderID:  senderID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("message_id", message.ID).Str("group_id", groupID).Msg("message sent")
	return message, nil
}

// ListGroup returns the group's messages newest first, each enriched with its
// sender. A soft-deleted group yields an empty list: the membership rows
// survive the deactivation, but the messages are no longer visible.
func (s *MessageService) ListGroup(ctx context.Context, userID, groupID string) ([]ports.MessageView, error) {
	if err := s.requireMembership(ctx, userID, groupID); err != nil {
		return nil, err
	}

	if _, err := s.groups.FindActiveByID(ctx, groupID); err != nil {
		if errors.Is(err, domain.ErrInvalidGroup) {
			return []ports.MessageView{}, nil
		}
		return nil, err
	}

	messages, err := s.messages.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	senders, err := s.loadUsers(ctx, senderIDs(messages))
	if err != nil {
		return nil, err
	}

	views := make([]ports.MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, ports.MessageView{
			ID:        m.ID,
			Text:      m.Text,
			GroupID:   m.GroupID,
			SenderID:  m.SenderID,
			CreatedAt: m.CreatedAt,
			Sender:    senders[m.SenderID],
		})
	}
	return views, nil
}

// Delete soft-deletes one of the caller's own messages. Whether the id was
// unknown or owned by someone else is deliberately not revealed.
func (s *MessageService) Delete(ctx context.Context, messageID, senderID string) error {
	count, err := s.messages.SoftDelete(ctx, messageID, senderID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrInvalidMessage
	}

	s.logger.Info().Str("message_id", messageID).Msg("message deleted")
	return nil
}

// Like is find-or-create: a repeated like returns the existing row without
// error. Two concurrent first likes race; the loser re-reads the winner's row.
func (s *MessageService) Like(ctx context.Context, messageID, userID string) (*domain.MessageLike, error) {
	existing, err := s.messages.FindLike(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	like, err := s.messages.CreateLike(ctx, &domain.MessageLike{
		MessageID: messageID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return s.messages.FindLike(ctx, messageID, userID)
		}
		return nil, err
	}
	return like, nil
}

func (s *MessageService) Unlike(ctx context.Context, messageID, userID string) error {
	count, err := s.messages.RemoveLike(ctx, messageID, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		// A missing like and an invalid message id share one error surface.
		return domain.ErrInvalidMessage
	}
	return nil
}

func (s *MessageService) Likes(ctx context.Context, messageID string) ([]ports.LikeView, error) {
	likes, err := s.messages.ListLikes(ctx, messageID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.UserID)
	}
	users, err := s.loadUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ports.LikeView, 0, len(likes))
	for _, l := range likes {
		views = append(views, ports.LikeView{
			ID:        l.ID,
			MessageID: l.MessageID,
			UserID:    l.UserID,
			CreatedAt: l.CreatedAt,
			User:      users[l.UserID],
		})
	}
	return views, nil
}

func (s *MessageService) loadUsers(ctx context.Context, ids []string) (map[string]*ports.MemberInfo, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*ports.MemberInfo, len(users))
	for _, u := range users {
		out[u.ID] = &ports.MemberInfo{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		}
	}
	return out, nil
}

func senderIDs(messages []*domain.Message) []string {
	seen := make(map[string]struct{}, len(messages))
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		if _, ok := seen[m.SenderID]; ok {
			continue
		}
		seen[m.SenderID] = struct{}{}
		ids = append(ids, m.SenderID)
	}
	return ids
}
