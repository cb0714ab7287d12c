package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/groupchat/messaging-api/internal/core/domain"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

// UserService implements signup, admin user creation, login, and the read
// operations on accounts.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: logger}
}

// Signup is the public self-registration entry point. The role is fixed here,
// never taken from input.
func (s *UserService) Signup(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleAdmin)
}

// AdminCreate is the admin-gated entry point; it always yields a standard user.
func (s *UserService) AdminCreate(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleStandard)
}

func (s *UserService) create(ctx context.Context, in ports.CreateUserInput, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", role).Msg("user created")
	return created, nil
}

// Update rewrites username, email, and password hash for the given user. The
// matched count is intentionally unchecked: updating an unknown id succeeds
// silently.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) error {
	upd := domain.UserUpdate{
		Username: in.Username,
		Email:    in.Email,
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		upd.PasswordHash = string(hash)
	}

	if _, err := s.repo.Update(ctx, id, upd); err != nil {
		return err
	}
	return nil
}

// Login verifies email+password and mints the token pair. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.tokens.IssueAuthTokens(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{User: user, Tokens: tokens}, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, searchText string) ([]*domain.User, error) {
	return s.repo.List(ctx, searchText)
}
