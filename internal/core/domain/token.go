package domain

// TokenType tags a signed token's purpose. Only access tokens authenticate
// API calls; refresh tokens exist solely to mint new pairs.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)
