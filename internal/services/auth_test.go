package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/guestlink/newsletter-backend/pkg/helpers"
)

func newAuthFixture(t *testing.T, password string) *authService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewAuthService(string(hash), "test-signing-secret")
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newAuthFixture(t, "front-desk-2026")

	token, err := svc.Login(helpers.TestCtx(), "front-desk-2026")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}
	if err := svc.VerifyToken(token); err != nil {
		t.Fatalf("freshly issued token should verify: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthFixture(t, "front-desk-2026")

	if _, err := svc.Login(helpers.TestCtx(), "guess"); err == nil {
		t.Fatalf("expected rejection for wrong password")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t, "front-desk-2026")

	if err := svc.VerifyToken("not-a-token"); err == nil {
		t.Fatalf("expected rejection for malformed token")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := newAuthFixture(t, "front-desk-2026")
	verifier := NewAuthService(string(issuer.passwordHash), "different-secret")

	token, err := issuer.Login(helpers.TestCtx(), "front-desk-2026")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := verifier.VerifyToken(token); err == nil {
		t.Fatalf("expected rejection for token signed with another secret")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := newAuthFixture(t, "front-desk-2026")
	svc.now = func() time.Time { return time.Now().Add(-2 * adminTokenTTL) }

	token, err := svc.Login(helpers.TestCtx(), "front-desk-2026")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.VerifyToken(token); err == nil {
		t.Fatalf("expected rejection for expired token")
	}
}
