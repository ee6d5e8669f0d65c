package model

import (
	"time"
)

// AnnouncementType categorizes an announcement
type AnnouncementType string

const (
	AnnouncementTypeNews        AnnouncementType = "news"
	AnnouncementTypeMaintenance AnnouncementType = "maintenance"
	AnnouncementTypeFeature     AnnouncementType = "feature"
	AnnouncementTypeAlert       AnnouncementType = "alert"
)

// Priority ranks the urgency of an announcement
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Announcement represents a publishable content item
type Announcement struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Type        AnnouncementType `json:"type"`
	Priority    Priority         `json:"priority"`
	IsActive    bool             `json:"isActive"`
	PublishedAt time.Time        `json:"publishedAt"`
	ExpiresAt   *time.Time       `json:"expiresAt,omitempty"`
	CreatedBy   string           `json:"createdBy"`
	Tags        []string         `json:"tags"`
	ViewCount   int              `json:"viewCount"`
}

// IsCurrentlyActive reports whether the announcement is inside its active
// window at the given time: the active flag is set and either no expiry is
// set or the expiry has not passed.
func (a *Announcement) IsCurrentlyActive(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.ExpiresAt == nil {
		return true
	}
	return a.ExpiresAt.After(now)
}

// AnnouncementStats aggregates announcement counts for the admin dashboard
type AnnouncementStats struct {
	Total      int            `json:"total"`
	Active     int            `json:"active"`
	Inactive   int            `json:"inactive"`
	ByType     map[string]int `json:"byType"`
	ByPriority map[string]int `json:"byPriority"`
	TotalViews int            `json:"totalViews"`
}
