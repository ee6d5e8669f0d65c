package model

import (
	"testing"
	"time"
)

func TestIsCurrentlyActive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		ann  Announcement
		want bool
	}{
		{"active without expiry", Announcement{IsActive: true}, true},
		{"inactive without expiry", Announcement{IsActive: false}, false},
		{"active before expiry", Announcement{IsActive: true, ExpiresAt: &future}, true},
		{"active past expiry", Announcement{IsActive: true, ExpiresAt: &past}, false},
		{"active at expiry instant", Announcement{IsActive: true, ExpiresAt: &now}, false},
		{"inactive before expiry", Announcement{IsActive: false, ExpiresAt: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ann.IsCurrentlyActive(now); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
