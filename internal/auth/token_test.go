package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc := NewTokenService(4 * time.Hour).WithClock(func() time.Time { return current })

	token, err := svc.GenerateSecureToken()
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not base64: %v", err)
	}
	issued, random, ok := strings.Cut(string(decoded), "-")
	if !ok {
		t.Fatalf("payload %q has no separator", decoded)
	}
	if issued != "1785585600000" {
		t.Errorf("issuance millis = %q, want 1785585600000", issued)
	}
	if len(random) != 64 {
		t.Errorf("random part length = %d, want 64", len(random))
	}

	if !svc.ValidateToken(token) {
		t.Error("token invalid at issuance time")
	}

	current = base.Add(3*time.Hour + 59*time.Minute)
	if !svc.ValidateToken(token) {
		t.Error("token invalid just inside the validity window")
	}

	current = base.Add(4*time.Hour + time.Minute)
	if svc.ValidateToken(token) {
		t.Error("token valid after expiry")
	}
}

func TestValidateTokenRejectsFutureIssuance(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	current := base.Add(time.Hour)
	svc := NewTokenService(4 * time.Hour).WithClock(func() time.Time { return current })

	token, err := svc.GenerateSecureToken()
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}

	// Clock moves behind the issuance time
	current = base
	if svc.ValidateToken(token) {
		t.Error("token issued in the future should not validate")
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := NewTokenService(4 * time.Hour)

	for _, token := range []string{
		"",
		"not base64!!",
		base64.StdEncoding.EncodeToString([]byte("no separator")),
		base64.StdEncoding.EncodeToString([]byte("abc-def")),
	} {
		if svc.ValidateToken(token) {
			t.Errorf("token %q should not validate", token)
		}
	}
}
