package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/password"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/core/token"
)

// failedLoginAlertThreshold is the failed-attempt count per email, within the
// tracker's window, above which a warning is logged for operators.
const failedLoginAlertThreshold = 5

// AuthService implements registration and login on top of the user store, the
// password hasher and the token service.
type AuthService struct {
	repo     ports.UserRepository
	hasher   *password.Hasher
	tokens   *token.Service
	attempts ports.AttemptTracker
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher *password.Hasher,
	tokens *token.Service,
	attempts ports.AttemptTracker,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		attempts: attempts,
		audit:    audit,
		log:      log,
	}
}

// Register creates a user with a hashed password. The role defaults to "user"
// when empty. The returned User carries no password material in its JSON form.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.KnownRole(role) {
		return nil, domain.ErrValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{Email: email, Kind: domain.AuditRegistered, Timestamp: time.Now().UTC()})
	s.log.Info().Str("email", email).Str("role", role).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, pass string) (string, error) {
	if email == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.noteFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		s.noteFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(domain.Principal{ID: user.ID, Role: user.Role})
	if err != nil {
		s.log.Error().Err(err).Msg("token issuance failed")
		return "", err
	}

	if err := s.attempts.Reset(ctx, email); err != nil {
		s.log.Debug().Err(err).Msg("attempt tracker reset failed")
	}
	s.audit.Enqueue(domain.AuditEvent{Email: email, Kind: domain.AuditLoginOK, Timestamp: time.Now().UTC()})
	return signed, nil
}

// noteFailure records a failed attempt. The tracker is advisory: errors are
// logged and the login outcome is unaffected.
func (s *AuthService) noteFailure(ctx context.Context, email string) {
	count, err := s.attempts.RecordFailure(ctx, email)
	if err != nil {
		s.log.Debug().Err(err).Msg("attempt tracker unavailable")
	} else if count >= failedLoginAlertThreshold {
		s.log.Warn().Str("email", email).Int64("failures", count).Msg("repeated failed logins")
	}
	s.audit.Enqueue(domain.AuditEvent{Email: email, Kind: domain.AuditLoginFailed, Timestamp: time.Now().UTC()})
}
