package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TokenService issues and validates opaque session tokens. A token is
// base64("<issuance millis>-<64 hex chars of randomness>"): a self-contained
// bearer credential whose validity is purely time-based. There is no
// revocation list; a token cannot be invalidated early except by client-side
// deletion.
type TokenService struct {
	ttl time.Duration
	now func() time.Time
}

// NewTokenService creates a TokenService with the given validity window.
func NewTokenService(ttl time.Duration) *TokenService {
	return &TokenService{ttl: ttl, now: time.Now}
}

// WithClock overrides the clock, for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// GenerateSecureToken returns a fresh session token.
func (s *TokenService) GenerateSecureToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate token randomness: %w", err)
	}

	millis := s.now().UnixMilli()
	payload := fmt.Sprintf("%d-%s", millis, hex.EncodeToString(randomBytes))
	return base64.StdEncoding.EncodeToString([]byte(payload)), nil
}

// ValidateToken reports whether the token is well formed and still inside
// its validity window.
func (s *TokenService) ValidateToken(token string) bool {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	issuedStr, _, ok := strings.Cut(string(decoded), "-")
	if !ok {
		return false
	}
	issuedMillis, err := strconv.ParseInt(issuedStr, 10, 64)
	if err != nil {
		return false
	}

	age := s.now().Sub(time.UnixMilli(issuedMillis))
	return age >= 0 && age < s.ttl
}
