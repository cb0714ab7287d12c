package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/groupchat/messaging-api/internal/core/domain"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 60 * time.Minute
	defaultRefreshTTL = 24 * time.Hour
)

// TokenService signs and verifies HS256 tokens over a shared secret. It holds
// no mutable state and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *TokenService) Issue(userID string, typ domain.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"type": string(typ),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject and token type.
// Type-appropriateness is the caller's concern.
func (s *TokenService) Verify(token string) (string, domain.TokenType, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	typ, _ := claims["type"].(string)
	if sub == "" || typ == "" {
		return "", "", domain.ErrInvalidToken
	}
	return sub, domain.TokenType(typ), nil
}

func (s *TokenService) IssueAuthTokens(userID string) (*ports.AuthTokens, error) {
	now := time.Now()

	access, err := s.Issue(userID, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Issue(userID, domain.TokenRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &ports.AuthTokens{
		Access:  ports.TokenDetail{Token: access, Expires: now.Add(s.accessTTL)},
		Refresh: ports.TokenDetail{Token: refresh, Expires: now.Add(s.refreshTTL)},
	}, nil
}
