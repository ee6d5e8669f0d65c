package auth

import (
	"strings"
	"testing"
)

// Small parameters keep the argon2 tests fast. Production uses DefaultParams.
var testParams = NewParams(1024, 1, 1)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("CorrectHorseBattery9!", testParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("hash %q does not look like argon2id", hash)
	}

	ok, err := VerifyPassword("CorrectHorseBattery9!", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}

	ok, err = VerifyPassword("WrongHorseBattery9!", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("CorrectHorseBattery9!", testParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("CorrectHorseBattery9!", testParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt is not random")
	}
}

func TestLegacyHashVerify(t *testing.T) {
	legacy := LegacyHashPassword("CorrectHorseBattery9!")
	if len(legacy) != 64 {
		t.Fatalf("legacy hash length = %d, want 64", len(legacy))
	}
	if !IsLegacyHash(legacy) {
		t.Error("legacy hash not detected as legacy")
	}

	// Deterministic: the same password always produces the same digest.
	if LegacyHashPassword("CorrectHorseBattery9!") != legacy {
		t.Error("legacy hash is not deterministic")
	}

	ok, err := VerifyPassword("CorrectHorseBattery9!", legacy)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password did not verify against legacy hash")
	}

	ok, err = VerifyPassword("WrongHorseBattery9!", legacy)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password verified against legacy hash")
	}
}

func TestNeedsRehash(t *testing.T) {
	if !NeedsRehash(LegacyHashPassword("x")) {
		t.Error("legacy hash should need a rehash")
	}

	hash, err := HashPassword("x", testParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("argon2id hash should not need a rehash")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
	} {
		if _, err := VerifyPassword("pw", hash); err == nil {
			t.Errorf("hash %q: expected error, got nil", hash)
		}
	}
}
