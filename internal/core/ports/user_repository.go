package ports

import (
	"context"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Uniqueness violations (username, email) surface as *domain.ValidationError
// with a per-field message; every other not-found case is ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users matching ids, in no particular order.
	// Missing ids are silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// List returns all users; when searchText is non-empty, only users whose
	// email contains it.
	List(ctx context.Context, searchText string) ([]*domain.User, error)
	// Update applies upd to the user with the given id and returns the number
	// of matched rows.
	Update(ctx context.Context, id string, upd domain.UserUpdate) (int64, error)
}
