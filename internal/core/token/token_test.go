package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/authcore/auth-service/internal/core/domain"
)

func TestService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	signed, err := svc.Issue(domain.Principal{ID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	principal, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal.ID != "user-1" || principal.Role != domain.RoleAdmin {
		t.Fatalf("decoded principal %+v does not match issued one", principal)
	}
}

func TestService_Expired(t *testing.T) {
	svc := &Service{secret: []byte("secret"), ttl: -time.Minute}

	signed, err := svc.Issue(domain.Principal{ID: "user-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestService_TamperedSignature(t *testing.T) {
	svc := NewService("secret", time.Hour)

	signed, err := svc.Issue(domain.Principal{ID: "user-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip the first character of the signature segment.
	parts := strings.SplitN(signed, ".", 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestService_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	signed, err := issuer.Issue(domain.Principal{ID: "user-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestService_Malformed(t *testing.T) {
	svc := NewService("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestService_DefaultTTL(t *testing.T) {
	svc := NewService("secret", 0)
	if svc.ttl != defaultTTL {
		t.Fatalf("expected default TTL %v, got %v", defaultTTL, svc.ttl)
	}
}
