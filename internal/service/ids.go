package service

import (
	"strings"

	"github.com/google/uuid"
)

// generateID returns a prefixed, hyphen-free identifier (usr_, ann_, ip_,
// aud_) short enough for display in the console.
func generateID(prefix string) string {
	id := uuid.New().String()
	clean := strings.ReplaceAll(id, "-", "")
	if len(prefix) > 0 {
		return prefix + "_" + clean[:min(26, len(clean))]
	}
	return clean
}
