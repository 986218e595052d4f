package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/metrics"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, username, password string) (*ports.TokenPair, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*ports.TokenPair, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

type stubUserService struct {
	getFn    func(ctx context.Context, username string) (*domain.User, error)
	changeFn func(ctx context.Context, userID, username string) (*domain.User, error)
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}

func (s *stubUserService) ChangeUsername(ctx context.Context, userID, username string) (*domain.User, error) {
	return s.changeFn(ctx, userID, username)
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Username != "juan01" || input.Email != "juan@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{
				ID:        "u1",
				Username:  input.Username,
				Email:     input.Email,
				Role:      domain.RoleUser,
				CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, rec := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"username":"juan01","password":"secret123","email":"juan@example.com"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "juan01" || resp["role"] != "user" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["create_date"] != "2026-08-01" {
		t.Fatalf("create_date = %v, want 2026-08-01", resp["create_date"])
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password leaked into response")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	auth := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUsernameConflict
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"username":"juan01","password":"secret123","email":"juan@example.com"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUsernameConflict) {
		t.Fatalf("err = %v, want ErrUsernameConflict", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{})

	// Username too short and email missing.
	c, _ := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"username":"ab","password":"secret123"}`)

	err := h.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (*ports.TokenPair, error) {
			if username != "juan01" || password != "secret123" {
				t.Fatalf("unexpected credentials: %s", username)
			}
			return &ports.TokenPair{
				TokenType:    "Bearer",
				AccessToken:  "access",
				ExpiresIn:    900,
				RefreshToken: "refresh",
			}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"username":"juan01","password":"secret123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token_type"] != "Bearer" || resp["access_token"] != "access" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["expires_in"] != float64(900) {
		t.Fatalf("expires_in = %v, want 900", resp["expires_in"])
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.TokenPair, error) {
			return nil, domain.ErrAuthenticationFailed
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"username":"juan01","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (*ports.TokenPair, error) {
			return nil, domain.ErrTooManyAttempts
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"username":"juan01","password":"secret123"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	auth := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken string) (*ports.TokenPair, error) {
			if refreshToken != "refresh" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return &ports.TokenPair{
				TokenType:    "Bearer",
				AccessToken:  "new-access",
				ExpiresIn:    900,
				RefreshToken: refreshToken,
			}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, rec := newJSONContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["refresh_token"] != "refresh" {
		t.Fatalf("refresh token changed: %+v", resp)
	}
}

func TestAuthHandler_Refresh_WrongKindToken(t *testing.T) {
	auth := &stubAuthService{
		refreshFn: func(_ context.Context, _ string) (*ports.TokenPair, error) {
			return nil, domain.ErrTokenSignatureInvalid
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"an-access-token"}`)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("err = %v, want ErrTokenSignatureInvalid", err)
	}
}

func TestAuthHandler_Refresh_MetricCountsTokenFailuresOnly(t *testing.T) {
	counter := metrics.TokenValidationsTotal.WithLabelValues("refresh", "failure")
	before := testutil.ToFloat64(counter)

	// Deleted account: the token itself was fine.
	auth := &stubAuthService{
		refreshFn: func(_ context.Context, _ string) (*ports.TokenPair, error) {
			return nil, domain.ErrAuthenticationFailed
		},
	}
	h := NewAuthHandler(auth, &stubUserService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh"}`)
	_ = h.Refresh(c)
	if got := testutil.ToFloat64(counter); got != before {
		t.Fatalf("failure counter moved to %v for a non-token error", got)
	}

	// An actual token failure does count.
	auth.refreshFn = func(_ context.Context, _ string) (*ports.TokenPair, error) {
		return nil, domain.ErrTokenExpired
	}
	c, _ = newJSONContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh"}`)
	_ = h.Refresh(c)
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("failure counter = %v, want %v", got, before+1)
	}
}
