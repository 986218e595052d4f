package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, _ []string) ([]domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateUsername(_ context.Context, _, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func newPrincipalFixture() (*service.TokenService, *stubUserRepo) {
	tokens := service.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"juan01": {ID: "u1", Username: "juan01", Email: "juan@example.com", Role: domain.RoleUser},
	}}
	return tokens, repo
}

func runPrincipal(t *testing.T, tokens *service.TokenService, repo *stubUserRepo, authorization string) (echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Principal(tokens, repo, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c, called
}

func TestPrincipal_ValidToken(t *testing.T) {
	tokens, repo := newPrincipalFixture()
	access, err := tokens.Issue("juan01", domain.TokenAccess, map[string]string{"email": "juan@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, called := runPrincipal(t, tokens, repo, "Bearer "+access)
	if !called {
		t.Fatalf("next not called")
	}

	p, ok := PrincipalFrom(c)
	if !ok {
		t.Fatalf("principal not attached")
	}
	if p.ID != "u1" || p.Username != "juan01" || p.Role != domain.RoleUser {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestPrincipal_NoHeader(t *testing.T) {
	tokens, repo := newPrincipalFixture()

	c, called := runPrincipal(t, tokens, repo, "")
	if !called {
		t.Fatalf("next not called")
	}
	if _, ok := PrincipalFrom(c); ok {
		t.Fatalf("principal attached without a token")
	}
}

func TestPrincipal_GarbageToken(t *testing.T) {
	tokens, repo := newPrincipalFixture()

	// A bad token does not fail the request; it only stays anonymous.
	c, called := runPrincipal(t, tokens, repo, "Bearer not-a-jwt")
	if !called {
		t.Fatalf("next not called")
	}
	if _, ok := PrincipalFrom(c); ok {
		t.Fatalf("principal attached from a garbage token")
	}
}

func TestPrincipal_RefreshTokenRejected(t *testing.T) {
	tokens, repo := newPrincipalFixture()
	refresh, err := tokens.Issue("juan01", domain.TokenRefresh, nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, called := runPrincipal(t, tokens, repo, "Bearer "+refresh)
	if !called {
		t.Fatalf("next not called")
	}
	if _, ok := PrincipalFrom(c); ok {
		t.Fatalf("principal attached from a refresh token")
	}
}

func TestPrincipal_DeletedAccount(t *testing.T) {
	tokens, repo := newPrincipalFixture()
	access, err := tokens.Issue("ghost", domain.TokenAccess, nil)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, called := runPrincipal(t, tokens, repo, "Bearer "+access)
	if !called {
		t.Fatalf("next not called")
	}
	if _, ok := PrincipalFrom(c); ok {
		t.Fatalf("principal attached for a non-existent subject")
	}
}

func TestPrincipal_AlreadyAttached(t *testing.T) {
	tokens, repo := newPrincipalFixture()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	existing := domain.Principal{ID: "u9", Username: "prior", Role: domain.RoleAdmin}
	c.Set(principalKey, existing)

	mw := Principal(tokens, repo, zerolog.Nop())
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	p, ok := PrincipalFrom(c)
	if !ok || p.ID != "u9" {
		t.Fatalf("existing principal was replaced: %+v", p)
	}
}
