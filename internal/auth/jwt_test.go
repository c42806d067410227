package auth

import (
	"strings"
	"testing"
	"time"
)

// newTestTokenService creates a TokenService for testing.
// It uses a fixed, known secret so tests are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!", "starwars-api", 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// =========================================================================
// TOKEN SERVICE CONSTRUCTION TESTS
// =========================================================================

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short", "starwars-api", time.Minute)
	if err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestNewTokenService_NonPositiveTTL(t *testing.T) {
	_, err := NewTokenService("this-is-16-chars", "starwars-api", 0)
	if err == nil {
		t.Fatal("NewTokenService() should reject a zero ttl")
	}
}

func TestNewTokenService_ValidSecret(t *testing.T) {
	_, err := NewTokenService("this-is-16-chars", "starwars-api", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error for valid secret: %v", err)
	}
}

// =========================================================================
// GENERATE TESTS
// =========================================================================

func TestGenerate_ReturnsThreePartToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("luke@tatooine.net")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := strings.Count(token, "."); got != 2 {
		t.Errorf("Generate() token has %d dots, want 2: %q", got, token)
	}
}

func TestGenerate_EmptyIdentity(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Generate(""); err == nil {
		t.Fatal("Generate() should reject an empty identity")
	}
}

func TestGenerate_TokensAreUnique(t *testing.T) {
	ts := newTestTokenService(t)

	// Same subject, same second: the jti still differs.
	a, _ := ts.Generate("leia@alderaan.org")
	b, _ := ts.Generate("leia@alderaan.org")
	if a == b {
		t.Error("Generate() produced identical tokens; jti must be unique")
	}
}

// =========================================================================
// VALIDATE TESTS
// =========================================================================

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("han@falcon.io")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	identity, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if identity != "han@falcon.io" {
		t.Errorf("Validate() = %q, want %q", identity, "han@falcon.io")
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.GenerateWithDuration("han@falcon.io", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	if _, err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should reject an expired token")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, _ := ts.Generate("han@falcon.io")

	// Flip one character of the signature.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	if _, err := ts.Validate(tampered); err == nil {
		t.Fatal("Validate() should reject a tampered token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("a-completely-different-secret", "starwars-api", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _ := other.Generate("han@falcon.io")
	if _, err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should reject a token signed with another secret")
	}
}

func TestValidate_WrongIssuer(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("test-secret-at-least-16-chars!!", "someone-else", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _ := other.Generate("han@falcon.io")
	if _, err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should reject a token from another issuer")
	}
}

func TestValidate_EmptyToken(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Validate(""); err == nil {
		t.Fatal("Validate() should reject an empty string")
	}
}

func TestValidate_GarbageString(t *testing.T) {
	ts := newTestTokenService(t)

	if _, err := ts.Validate("this.is.not-a-jwt"); err == nil {
		t.Fatal("Validate() should reject garbage")
	}
}
