package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + copy.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, *cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateUsername(_ context.Context, id, username string) (*domain.User, error) {
	for old, u := range r.users {
		if u.ID == id {
			updated := cloneUser(u)
			updated.Username = username
			delete(r.users, old)
			r.users[username] = updated
			return cloneUser(updated), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubRoleRepo struct {
	missing bool
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.Role) (domain.Role, error) {
	if r.missing {
		return "", domain.ErrRoleNotFound
	}
	return name, nil
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (stubHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

type stubThrottle struct {
	allowed  bool
	allowErr error
	failures int
	resets   int
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) {
	return t.allowed, t.allowErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

func newTestAuthService(users *stubUserRepo, roles ports.RoleRepository, throttle ports.LoginThrottle) (*AuthService, *TokenService) {
	tokens := newTestTokenService()
	return NewAuthService(users, roles, tokens, stubHasher{}, throttle, zerolog.Nop()), tokens
}

func seedUser(repo *stubUserRepo, username, password, email string) {
	repo.users[username] = &domain.User{
		ID:           "id-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, tokens := newTestAuthService(repo, &stubRoleRepo{}, nil)

	pair, err := svc.Login(context.Background(), "juan01", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Fatalf("token type = %q, want Bearer", pair.TokenType)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expires_in = %d, want 900", pair.ExpiresIn)
	}

	subject, err := tokens.SubjectOf(pair.AccessToken, domain.TokenAccess)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if subject != "juan01" {
		t.Fatalf("access subject = %q, want juan01", subject)
	}

	claims, err := tokens.Validate(pair.AccessToken, domain.TokenAccess)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.Email != "juan@example.com" {
		t.Fatalf("access email claim = %q, want juan@example.com", claims.Email)
	}

	if _, err := tokens.SubjectOf(pair.RefreshToken, domain.TokenRefresh); err != nil {
		t.Fatalf("refresh token did not validate: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	pair, err := svc.Login(context.Background(), "juan01", "wrong")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed", err)
	}
	if pair != nil {
		t.Fatalf("expected no token pair, got %+v", pair)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	throttle := &stubThrottle{allowed: false}
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, throttle)

	// Even the right password is rejected while the username is locked.
	_, err := svc.Login(context.Background(), "juan01", "secret123")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("err = %v, want ErrTooManyAttempts", err)
	}
}

func TestAuthService_Login_ThrottleUnavailable(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	throttle := &stubThrottle{allowErr: errors.New("redis down")}
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, throttle)

	// The limiter failing open must not lock users out.
	if _, err := svc.Login(context.Background(), "juan01", "secret123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
}

func TestAuthService_Login_FailureRecordedAndReset(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	throttle := &stubThrottle{allowed: true}
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, throttle)

	_, _ = svc.Login(context.Background(), "juan01", "wrong")
	if throttle.failures != 1 {
		t.Fatalf("failures = %d, want 1", throttle.failures)
	}

	if _, err := svc.Login(context.Background(), "juan01", "secret123"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("resets = %d, want 1", throttle.resets)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:    "juan01",
		Password:    "secret123",
		Email:       "juan@example.com",
		Description: "hola",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.DefaultRole {
		t.Fatalf("role = %q, want %q", user.Role, domain.DefaultRole)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in clear")
	}
	if user.ID == "" {
		t.Fatalf("expected an assigned ID")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "juan01",
		Password: "other456",
		Email:    "other@example.com",
	})
	if !errors.Is(err, domain.ErrUsernameConflict) {
		t.Fatalf("err = %v, want ErrUsernameConflict", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("user count = %d, want 1", len(repo.users))
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "other",
		Password: "other456",
		Email:    "juan@example.com",
	})
	if !errors.Is(err, domain.ErrEmailConflict) {
		t.Fatalf("err = %v, want ErrEmailConflict", err)
	}
}

func TestAuthService_Register_MissingDefaultRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, &stubRoleRepo{missing: true}, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "juan01",
		Password: "secret123",
		Email:    "juan@example.com",
	})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("err = %v, want ErrRoleNotFound", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("user count = %d, want 0", len(repo.users))
	}
}

func TestAuthService_Refresh_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, tokens := newTestAuthService(repo, &stubRoleRepo{}, nil)

	initial, err := svc.Login(context.Background(), "juan01", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), initial.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if pair.RefreshToken != initial.RefreshToken {
		t.Fatalf("refresh token was rotated")
	}

	subject, err := tokens.SubjectOf(pair.AccessToken, domain.TokenAccess)
	if err != nil {
		t.Fatalf("new access token did not validate: %v", err)
	}
	if subject != "juan01" {
		t.Fatalf("access subject = %q, want juan01", subject)
	}
}

func TestAuthService_Refresh_WithAccessToken(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	pair, err := svc.Login(context.Background(), "juan01", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// An access token must never act as a refresh credential.
	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	if !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("err = %v, want ErrTokenSignatureInvalid", err)
	}
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "juan01", "secret123", "juan@example.com")
	svc, _ := newTestAuthService(repo, &stubRoleRepo{}, nil)

	pair, err := svc.Login(context.Background(), "juan01", "secret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	delete(repo.users, "juan01")

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("err = %v, want ErrAuthenticationFailed", err)
	}
}
