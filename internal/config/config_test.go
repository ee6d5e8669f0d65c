package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Security.Lockout.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Security.Lockout.MaxAttempts)
	}
	if cfg.Security.Lockout.Duration != 30*time.Minute {
		t.Errorf("Duration = %v, want 30m", cfg.Security.Lockout.Duration)
	}
	if cfg.Security.Lockout.LoginDelay != time.Second {
		t.Errorf("LoginDelay = %v, want 1s", cfg.Security.Lockout.LoginDelay)
	}
	if cfg.Security.Session.TokenTTL != 4*time.Hour {
		t.Errorf("TokenTTL = %v, want 4h", cfg.Security.Session.TokenTTL)
	}
	if cfg.Security.Password.MinLength != 12 {
		t.Errorf("MinLength = %d, want 12", cfg.Security.Password.MinLength)
	}
	if cfg.Security.Password.Argon2Memory != 65536 {
		t.Errorf("Argon2Memory = %d, want 65536", cfg.Security.Password.Argon2Memory)
	}
}
