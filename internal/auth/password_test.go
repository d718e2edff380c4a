package auth

import (
	"strings"
	"testing"
)

// bcrypt cost 4 is the library minimum — fast enough for tests.
const testBcryptCost = 4

func TestHashAndVerify(t *testing.T) {
	passwords := NewPasswordServiceForTest(testBcryptCost)

	hash, err := passwords.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt hash prefix, got %q", hash[:4])
	}

	if err := passwords.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
	if err := passwords.Verify(hash, "wrong password"); err == nil {
		t.Error("Verify with wrong password: expected error, got nil")
	}
}

func TestHashProducesUniqueSalts(t *testing.T) {
	passwords := NewPasswordServiceForTest(testBcryptCost)

	h1, err := passwords.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := passwords.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	// Random salt means identical passwords never share a hash.
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — salt missing?")
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	passwords := NewPasswordServiceForTest(testBcryptCost)

	if _, err := passwords.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for 73-byte password, got nil")
	}
	if _, err := passwords.Hash(strings.Repeat("x", 72)); err != nil {
		t.Errorf("72-byte password should be accepted: %v", err)
	}
}

func TestVerifyDummyAlwaysFails(t *testing.T) {
	passwords := NewPasswordServiceForTest(testBcryptCost)

	if err := passwords.VerifyDummy("anything"); err == nil {
		t.Error("VerifyDummy must always return an error")
	}
}
