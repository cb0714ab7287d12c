package domain

import "errors"

// Sentinel business errors. The messages are the client-facing strings: the
// HTTP error boundary renders them verbatim inside the 400 envelope.
var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("The userId provided is invalid.")
	ErrInvalidGroup       = errors.New("The groupId provided is invalid.")
	ErrNoActiveGroup      = errors.New("No active group exists with the given id")
	ErrMembershipNotFound = errors.New("No active group exists with the given groupId and userId")
	ErrNotAMember         = errors.New("This user is not part of the group")
	// ErrInvalidMessage covers both "message does not exist" and "message not
	// owned by the caller". Collapsing the two hides whether a given id exists
	// from non-owners.
	ErrInvalidMessage = errors.New("The message id provided is invalid.")
	ErrInvalidToken   = errors.New("invalid token")
)

// FieldError is a single field-level failure inside a ValidationError.
type FieldError struct {
	Field   string `json:"type"`
	Message string `json:"message"`
}

// ValidationError carries a per-field breakdown, mirroring uniqueness
// violations and schema failures. Rendered as a 400 with an errors array.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string { return e.Message }

// NewUniqueFieldError reports a uniqueness violation on a single field.
func NewUniqueFieldError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Validation error: " + message,
		Fields:  []FieldError{{Field: field, Message: message}},
	}
}

// ErrDuplicateMembership is the uniqueness violation for the
// (groupId, userId) membership pair.
func ErrDuplicateMembership() *ValidationError {
	return NewUniqueFieldError("userId", "groupId and userId combination must be unique.")
}
