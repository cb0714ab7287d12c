package domain

import "time"

// Group is a messaging room. Deletion is a soft state: IsActive flips to
// false and the row is never physically removed.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership joins a user to a group. The (GroupID, UserID) pair is unique;
// removal is a hard delete.
type Membership struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
