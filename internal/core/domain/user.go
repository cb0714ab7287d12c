package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// User models an account in the system. The password hash never leaves the
// process: it is excluded from every serialized form.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserUpdate carries the mutable user fields. PasswordHash, when non-empty,
// replaces the stored hash.
type UserUpdate struct {
	Username     string
	Email        string
	PasswordHash string
}
