package ports

import (
	"context"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// CreateUserInput carries the fields shared by signup and admin user
// creation. The resulting role is fixed by the entry point, never by input.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries a full user update. A non-empty Password is
// rehashed before storage.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is the login payload: the user plus the token pair.
type LoginResult struct {
	User   *domain.User `json:"user"`
	Tokens *AuthTokens  `json:"tokens"`
}

// UserService defines the user-facing use cases.
type UserService interface {
	// Signup is the public self-registration entry point; the created user is
	// always an admin.
	Signup(ctx context.Context, in CreateUserInput) (*domain.User, error)
	// AdminCreate is the admin-gated entry point; the created user is always
	// standard.
	AdminCreate(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, searchText string) ([]*domain.User, error)
}
