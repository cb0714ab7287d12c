package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/groupchat/messaging-api/internal/core/domain"
	"github.com/groupchat/messaging-api/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, _ []string) ([]*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) List(_ context.Context, _ string) ([]*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) Update(_ context.Context, _ string, _ domain.UserUpdate) (int64, error) {
	return 0, nil
}

func newAuthFixture() (*service.TokenService, *stubUserRepo) {
	tokens := service.NewTokenService("secret", time.Hour, 24*time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"user_1": {ID: "user_1", Username: "alice", Role: domain.RoleAdmin},
		"user_2": {ID: "user_2", Username: "bob", Role: domain.RoleStandard},
	}}
	return tokens, repo
}

func assertRejected(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Please authenticate" {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens, repo := newAuthFixture()

	signed, err := tokens.Issue("user_1", domain.TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens, repo)(func(c echo.Context) error {
		called = true
		user := UserFromContext(c)
		if user == nil || user.ID != "user_1" {
			t.Fatalf("user not attached: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	tokens, repo := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec)
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	tokens, repo := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := echo.New()
	tokens, repo := newAuthFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	e := echo.New()
	tokens, repo := newAuthFixture()

	// Refresh tokens never authenticate requests, only access tokens do.
	signed, err := tokens.Issue("user_1", domain.TokenRefresh, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec)
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	e := echo.New()
	tokens, repo := newAuthFixture()

	signed, err := tokens.Issue("deleted_user", domain.TokenAccess, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec)
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userContextKey, &domain.User{ID: "user_1", Role: domain.RoleAdmin})

	called := false
	handler := RequireAdmin()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAdmin_RejectsStandardUser(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userContextKey, &domain.User{ID: "user_2", Role: domain.RoleStandard})

	handler := RequireAdmin()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Only admin can perform this operation." {
		t.Fatalf("unexpected message: %q", resp["message"])
	}
}
