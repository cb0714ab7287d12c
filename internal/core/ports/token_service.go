package ports

import (
	"time"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

// TokenDetail is one signed token plus its expiry instant.
type TokenDetail struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is the access/refresh pair returned by login.
type AuthTokens struct {
	Access  TokenDetail `json:"access"`
	Refresh TokenDetail `json:"refresh"`
}

// TokenService issues and verifies signed, expiring tokens. It is a pure
// cryptographic operation over a shared secret; nothing is persisted.
type TokenService interface {
	// Issue produces a signed token carrying {sub, iat, exp, type}.
	Issue(userID string, typ domain.TokenType, ttl time.Duration) (string, error)
	// Verify fails with ErrInvalidToken on a bad signature, malformed payload,
	// or expiry. It does not check type-appropriateness: callers must confirm
	// the type themselves (the auth gate requires TokenAccess).
	Verify(token string) (userID string, typ domain.TokenType, err error)
	// IssueAuthTokens mints the login pair: a 60-minute access token and a
	// 24-hour refresh token for the same subject.
	IssueAuthTokens(userID string) (*AuthTokens, error)
}
