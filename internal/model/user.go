package model

import (
	"time"
)

// Role represents the console role of an admin user
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleSuperAdmin Role = "super_admin"
)

// UserStatus represents the status of an admin account
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDisabled  UserStatus = "disabled"
)

// AllPermissions is the full permission set granted to the bootstrap super admin
var AllPermissions = []string{
	"read", "write", "delete",
	"manage_users", "manage_announcements", "manage_ips", "system_config",
}

// AdminUser represents an identity with console access
type AdminUser struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	PasswordHash     string     `json:"passwordHash"`
	Role             Role       `json:"role"`
	Permissions      []string   `json:"permissions"`
	Email            string     `json:"email,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	Status           UserStatus `json:"status"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	LoginAttempts    int        `json:"loginAttempts"`
	LockoutUntil     *time.Time `json:"lockoutUntil,omitempty"`
}

// IsLockedAt reports whether the account is locked out at the given time
func (u *AdminUser) IsLockedAt(now time.Time) bool {
	if u.LockoutUntil == nil {
		return false
	}
	return now.Before(*u.LockoutUntil)
}

// IsActive reports whether the account may log in
func (u *AdminUser) IsActive() bool {
	return u.Status == UserStatusActive
}
