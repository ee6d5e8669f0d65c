package model

import (
	"time"
)

// IPStatus represents the reputation classification of a network address
type IPStatus string

const (
	IPStatusAllowed   IPStatus = "allowed"
	IPStatusBlocked   IPStatus = "blocked"
	IPStatusMonitored IPStatus = "monitored"
)

// IPRecord tracks reputation for a single network address. Request counters
// and last-activity are maintained for the admin console; no request pipeline
// feeds them in this module.
type IPRecord struct {
	ID           string    `json:"id"`
	IP           string    `json:"ip"`
	Status       IPStatus  `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Country      string    `json:"country,omitempty"`
	Region       string    `json:"region,omitempty"`
	City         string    `json:"city,omitempty"`
	Requests     int       `json:"requests"`
	LastActivity time.Time `json:"lastActivity"`
	RiskScore    int       `json:"riskScore"`
}
