package auth

import (
	"errors"
	"testing"
	"time"

	"ridebook/internal/domain"
)

func TestIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("secret", "ridebook", time.Hour)

	token, expiresAt, err := issuer.Issue("user-1", domain.UserRoleOperator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expected expiry in the future, got %v", expiresAt)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", claims.Subject)
	}
	if claims.Role != domain.UserRoleOperator {
		t.Errorf("expected role operator, got %s", claims.Role)
	}
}

func TestIssuer_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewIssuer("other", "ridebook", time.Hour).Issue("user-1", domain.UserRoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewIssuer("secret", "ridebook", time.Hour).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer("secret", "ridebook", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := issuer.Issue("user-1", domain.UserRoleDriver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	issuer.now = time.Now
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer("secret", "ridebook", time.Hour).Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
