// Package token issues and verifies the HS256 bearer tokens that carry a
// user's identity and role between login and the protected endpoints.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authcore/auth-service/internal/core/domain"
)

const defaultTTL = 15 * time.Minute

// Verification failures are distinguishable here for logging and metrics only.
// The HTTP boundary collapses all of them to a single 401.
var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service mints and verifies tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting the principal's id and role, valid for the
// configured TTL from now.
func (s *Service) Issue(p domain.Principal) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return t.SignedString(s.secret)
}

// Verify validates the signature and expiry of raw and returns the embedded
// principal. Failures are one of ErrMalformed, ErrBadSignature, ErrExpired.
func (s *Service) Verify(raw string) (domain.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Principal{}, ErrBadSignature
		default:
			return domain.Principal{}, ErrMalformed
		}
	}
	if !parsed.Valid {
		return domain.Principal{}, ErrMalformed
	}
	return domain.Principal{ID: c.Subject, Role: c.Role}, nil
}
