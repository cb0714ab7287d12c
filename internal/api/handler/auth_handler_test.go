package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/groupchat/messaging-api/internal/core/domain"
	"github.com/groupchat/messaging-api/internal/core/ports"
)

type stubUserService struct {
	signupFn      func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	adminCreateFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	updateFn      func(ctx context.Context, id string, in ports.UpdateUserInput) error
	loginFn       func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	profileFn     func(ctx context.Context, id string) (*domain.User, error)
	listFn        func(ctx context.Context, searchText string) ([]*domain.User, error)
}

func (s *stubUserService) Signup(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubUserService) AdminCreate(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.adminCreateFn(ctx, in)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.profileFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, searchText string) ([]*domain.User, error) {
	return s.listFn(ctx, searchText)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubUserService{
		signupFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID:           "user_1",
				Username:     in.Username,
				Email:        in.Email,
				PasswordHash: "bcrypt-hash",
				Role:         domain.RoleAdmin,
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"password!"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %v", resp["role"])
	}
	if _, leaked := resp["PasswordHash"]; leaked {
		t.Fatalf("password hash leaked into response")
	}
	if strings.Contains(rec.Body.String(), "bcrypt-hash") {
		t.Fatalf("password hash leaked into response body")
	}
}

func TestAuthHandler_Signup_WeakPassword(t *testing.T) {
	stub := &stubUserService{
		signupFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"short"}`)

	err := h.Signup(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) == 0 || verr.Fields[0].Field != "password" {
		t.Fatalf("unexpected fields: %+v", verr.Fields)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubUserService{
		signupFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/signup", "not-json")

	err := h.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_AddUser_RoleIsStandard(t *testing.T) {
	stub := &stubUserService{
		adminCreateFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			return &domain.User{ID: "user_2", Username: in.Username, Role: domain.RoleStandard}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/user",
		`{"username":"bob","email":"bob@example.com","password":"password!"}`)

	if err := h.AddUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != domain.RoleStandard {
		t.Fatalf("expected standard role, got %v", resp["role"])
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "password!" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				User: &domain.User{ID: "user_1", Username: "alice"},
				Tokens: &ports.AuthTokens{
					Access:  ports.TokenDetail{Token: "access-token"},
					Refresh: ports.TokenDetail{Token: "refresh-token"},
				},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"password!"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		User   map[string]any `json:"user"`
		Tokens struct {
			Access  map[string]any `json:"access"`
			Refresh map[string]any `json:"refresh"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User["username"] != "alice" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if resp.Tokens.Access["token"] != "access-token" || resp.Tokens.Refresh["token"] != "refresh-token" {
		t.Fatalf("unexpected tokens: %+v", resp.Tokens)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrongpass!"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_UpdateUser_Success(t *testing.T) {
	var gotID string
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateUserInput) error {
			gotID = id
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/auth/user/user_7",
		`{"username":"bob","email":"bob@example.com","password":"password!"}`)
	c.SetParamNames("id")
	c.SetParamValues("user_7")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != "user_7" {
		t.Fatalf("expected id user_7, got %s", gotID)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp["success"] {
		t.Fatalf("expected success response, got %s", rec.Body.String())
	}
}

func TestAuthHandler_ListUsers_PassesSearchText(t *testing.T) {
	var gotSearch string
	stub := &stubUserService{
		listFn: func(ctx context.Context, searchText string) ([]*domain.User, error) {
			gotSearch = searchText
			return []*domain.User{{ID: "user_1", Username: "alice"}}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/user?searchText=corp", "")

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotSearch != "corp" {
		t.Fatalf("expected searchText corp, got %q", gotSearch)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Profile_RequiresAuthUser(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, id string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/auth/profile", "")

	err := h.Profile(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
