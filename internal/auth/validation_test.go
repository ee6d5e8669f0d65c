package auth

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "CorrectHorseBattery9!", false},
		{"too short", "Short9!", true},
		{"no uppercase", "correcthorsebattery9!", true},
		{"no lowercase", "CORRECTHORSEBATTERY9!", true},
		{"no digit", "CorrectHorseBattery!", true},
		{"no special", "CorrectHorseBattery9", true},
		{"special outside the allowed set", "CorrectHorseBattery9?", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, 12)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePasswordMinLengthDefault(t *testing.T) {
	// Eleven characters fails the default minimum of twelve.
	if err := ValidatePassword("Abcdefgh19!", 0); err == nil {
		t.Error("expected error for 11-character password with default minimum")
	}
	if err := ValidatePassword("Abcdefghi19!", 0); err != nil {
		t.Errorf("unexpected error for 12-character password: %v", err)
	}
}

func TestValidateUsername(t *testing.T) {
	for _, username := range []string{"alice", "bob-2", "carol.d", "d_e"} {
		if err := ValidateUsername(username); err != nil {
			t.Errorf("ValidateUsername(%q): %v", username, err)
		}
	}
	for _, username := range []string{"", "ab", "has space", "semi;colon"} {
		if err := ValidateUsername(username); err == nil {
			t.Errorf("ValidateUsername(%q): expected error", username)
		}
	}
}
