package model

import (
	"strings"
	"time"
)

// Severity classifies an audit entry
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// AuditLog represents one append-only security trail entry
type AuditLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Target    string    `json:"target,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Severity  Severity  `json:"severity"`
}

// Audit action constants
const (
	AuditActionLoginSuccess        = "login_success"
	AuditActionLoginFailed         = "login_failed"
	AuditActionLoginBlocked        = "login_blocked"
	AuditActionAdminUserCreated    = "admin_user_created"
	AuditActionUserStatusUpdated   = "user_status_updated"
	AuditActionAnnouncementCreated = "announcement_created"
	AuditActionAnnouncementUpdated = "announcement_updated"
	AuditActionAnnouncementDeleted = "announcement_deleted"
	AuditActionIPStatusUpdated     = "ip_status_updated"
	AuditActionIPRecordDeleted     = "ip_record_deleted"
)

// SeverityForAction derives an entry severity from its action tag. Failure
// and blocked actions are warnings, everything else informational.
func SeverityForAction(action string) Severity {
	if strings.Contains(action, "failed") || strings.Contains(action, "blocked") {
		return SeverityWarning
	}
	return SeverityInfo
}
