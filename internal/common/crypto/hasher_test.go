package crypto_test

import (
	"strings"
	"testing"

	"github.com/mbickford/accounts-service/internal/common/crypto"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	if testing.Short() {
		t.Skip("bcrypt at cost 12 is slow")
	}

	hasher := &crypto.BcryptHasher{}

	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}

	if err := hasher.Compare(hash, "correct horse battery"); err != nil {
		t.Errorf("expected match, got %v", err)
	}

	if err := hasher.Compare(hash, "wrong password"); err == nil {
		t.Error("expected mismatch error")
	}
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	if testing.Short() {
		t.Skip("bcrypt at cost 12 is slow")
	}

	hasher := &crypto.BcryptHasher{}

	h1, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := hasher.Hash("same password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if h1 == h2 {
		t.Error("expected different hashes for the same password")
	}
}
