package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/groupchat/messaging-api/internal/core/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	token, err := svc.Issue("user_1", domain.TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	sub, typ, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if sub != "user_1" {
		t.Fatalf("expected subject user_1, got %s", sub)
	}
	if typ != domain.TokenAccess {
		t.Fatalf("expected access type, got %s", typ)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)
	other := NewTokenService("other-secret", time.Hour, 24*time.Hour)

	token, err := svc.Issue("user_1", domain.TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := other.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	token, err := svc.Issue("user_1", domain.TokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := svc.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	if _, _, err := svc.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_WrongAlgorithm(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "user_1",
		"type": string(domain.TokenAccess),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, _, err := svc.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for none alg, got %v", err)
	}
}

func TestTokenService_IssueAuthTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	pair, err := svc.IssueAuthTokens("user_9")
	if err != nil {
		t.Fatalf("issue pair failed: %v", err)
	}

	sub, typ, err := svc.Verify(pair.Access.Token)
	if err != nil || sub != "user_9" || typ != domain.TokenAccess {
		t.Fatalf("access token wrong: sub=%s typ=%s err=%v", sub, typ, err)
	}

	sub, typ, err = svc.Verify(pair.Refresh.Token)
	if err != nil || sub != "user_9" || typ != domain.TokenRefresh {
		t.Fatalf("refresh token wrong: sub=%s typ=%s err=%v", sub, typ, err)
	}

	if !pair.Refresh.Expires.After(pair.Access.Expires) {
		t.Fatalf("refresh should outlive access: %v vs %v", pair.Refresh.Expires, pair.Access.Expires)
	}
}

func TestTokenService_ClaimsShape(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 24*time.Hour)

	token, err := svc.Issue("user_1", domain.TokenRefresh, time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "user_1" {
		t.Fatalf("unexpected sub: %v", claims["sub"])
	}
	if claims["type"] != string(domain.TokenRefresh) {
		t.Fatalf("unexpected type: %v", claims["type"])
	}
	if _, ok := claims["iat"]; !ok {
		t.Fatalf("missing iat claim")
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("missing exp claim")
	}
}
