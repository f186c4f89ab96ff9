package token_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/mbickford/accounts-service/internal/common/token"
)

const testSecret = "test-secret-key-of-sufficient-len"

func TestCodec_RoundTrip(t *testing.T) {
	codec := token.NewCodec(testSecret)

	tok, err := codec.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	sub, ok := token.Subject(claims)
	if !ok || sub != "alice" {
		t.Errorf("expected sub alice, got %q (ok=%v)", sub, ok)
	}
}

func TestCodec_Verify_Tampered(t *testing.T) {
	codec := token.NewCodec(testSecret)

	tok, err := codec.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS with 3 parts, got %d", len(parts))
	}

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := codec.Verify(tampered); !errors.Is(err, token.ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestCodec_Verify_DifferentSecret(t *testing.T) {
	issuer := token.NewCodec(testSecret)
	verifier := token.NewCodec("another-secret-key-entirely-okay")

	tok, err := issuer.Issue(token.Claims{"sub": "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(tok); !errors.Is(err, token.ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := token.NewCodec(testSecret)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(tok); !errors.Is(err, token.ErrInvalidSignature) {
			t.Errorf("token %q: expected ErrInvalidSignature, got %v", tok, err)
		}
	}
}

func TestCodec_Verify_RejectsNoneAlgorithm(t *testing.T) {
	codec := token.NewCodec(testSecret)

	enc := func(s string) string {
		return base64.RawURLEncoding.EncodeToString([]byte(s))
	}
	unsigned := enc(`{"alg":"none","typ":"JWT"}`) + "." + enc(`{"sub":"alice"}`) + "."

	if _, err := codec.Verify(unsigned); !errors.Is(err, token.ErrInvalidSignature) {
		t.Errorf("expected ErrInvalidSignature for alg=none, got %v", err)
	}
}

func TestSubject_Missing(t *testing.T) {
	if _, ok := token.Subject(token.Claims{}); ok {
		t.Error("expected ok=false for missing sub")
	}

	if _, ok := token.Subject(token.Claims{"sub": 42}); ok {
		t.Error("expected ok=false for non-string sub")
	}

	if _, ok := token.Subject(token.Claims{"sub": ""}); ok {
		t.Error("expected ok=false for empty sub")
	}
}
