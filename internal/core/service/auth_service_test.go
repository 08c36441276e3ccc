package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/password"
	"github.com/authcore/auth-service/internal/core/token"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	failAll bool
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
	if r.failAll {
		return nil, errors.New("store down")
	}
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "id-" + strconv.Itoa(r.nextID)
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failAll {
		return nil, errors.New("store down")
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubTracker struct {
	counts map[string]int64
	resets int
	err    error
}

func newStubTracker() *stubTracker {
	return &stubTracker{counts: make(map[string]int64)}
}

func (t *stubTracker) RecordFailure(_ context.Context, email string) (int64, error) {
	if t.err != nil {
		return 0, t.err
	}
	t.counts[email]++
	return t.counts[email], nil
}

func (t *stubTracker) Reset(_ context.Context, email string) error {
	if t.err != nil {
		return t.err
	}
	t.resets++
	delete(t.counts, email)
	return nil
}

type recordingSink struct {
	events []domain.AuditEvent
}

func (s *recordingSink) Enqueue(event domain.AuditEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) kinds() []domain.AuditKind {
	out := make([]domain.AuditKind, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	svc     *AuthService
	repo    *stubUserRepo
	tracker *stubTracker
	sink    *recordingSink
	tokens  *token.Service
}

func newFixture() *fixture {
	repo := newStubUserRepo()
	tracker := newStubTracker()
	sink := &recordingSink{}
	tokens := token.NewService("secret", time.Hour)
	svc := NewAuthService(repo, password.NewHasher(4), tokens, tracker, sink, zerolog.Nop())
	return &fixture{svc: svc, repo: repo, tracker: tracker, sink: sink, tokens: tokens}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture()

	user, err := f.svc.Register(context.Background(), "alice@example.com", "pass123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Email != "alice@example.com" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "pass123" || user.PasswordHash == "" {
		t.Fatalf("password was not hashed")
	}
	if len(f.sink.events) != 1 || f.sink.events[0].Kind != domain.AuditRegistered {
		t.Fatalf("expected one registered audit event, got %v", f.sink.kinds())
	}
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	f := newFixture()

	user, err := f.svc.Register(context.Background(), "bob@example.com", "pass", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "", "pass", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty email, got %v", err)
	}
	if _, err := f.svc.Register(ctx, "a@example.com", "", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
	if _, err := f.svc.Register(ctx, "a@example.com", "pass", "superuser"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "bob@example.com", "pass", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := f.svc.Register(ctx, "bob@example.com", "pass2", ""); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Register(ctx, "carol@example.com", "s3cret", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, err := f.svc.Login(ctx, "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	principal, err := f.tokens.Verify(signed)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if principal.ID != created.ID || principal.Role != domain.RoleAdmin {
		t.Fatalf("token principal %+v does not match registered user %s", principal, created.ID)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "dave@example.com", "goodpass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := f.svc.Login(ctx, "dave@example.com", "badpass")
	_, unknown := f.svc.Login(ctx, "ghost@example.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_TracksFailuresAndResets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "eve@example.com", "right", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, _ = f.svc.Login(ctx, "eve@example.com", "wrong")
	}
	if got := f.tracker.counts["eve@example.com"]; got != 3 {
		t.Fatalf("expected 3 tracked failures, got %d", got)
	}

	if _, err := f.svc.Login(ctx, "eve@example.com", "right"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if f.tracker.resets != 1 {
		t.Fatalf("expected tracker reset after successful login")
	}
	if _, lingering := f.tracker.counts["eve@example.com"]; lingering {
		t.Fatalf("failure count not cleared")
	}
}

func TestAuthService_Login_TrackerDownFailsOpen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Register(ctx, "frank@example.com", "pass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	f.tracker.err = errors.New("redis down")

	if _, err := f.svc.Login(ctx, "frank@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials despite tracker outage, got %v", err)
	}
	if _, err := f.svc.Login(ctx, "frank@example.com", "pass"); err != nil {
		t.Fatalf("successful login must not depend on the tracker, got %v", err)
	}
}

func TestAuthService_Login_AuditOutcomes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _ = f.svc.Register(ctx, "gina@example.com", "pass", "")
	_, _ = f.svc.Login(ctx, "gina@example.com", "nope")
	_, _ = f.svc.Login(ctx, "gina@example.com", "pass")

	want := []domain.AuditKind{domain.AuditRegistered, domain.AuditLoginFailed, domain.AuditLoginOK}
	got := f.sink.kinds()
	if len(got) != len(want) {
		t.Fatalf("expected %v audit events, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("audit event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAuthService_Login_StoreFailureIsOpaque(t *testing.T) {
	f := newFixture()
	f.repo.failAll = true

	_, err := f.svc.Login(context.Background(), "x@example.com", "pass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected opaque internal error, got %v", err)
	}
}
