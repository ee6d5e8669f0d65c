package model

import (
	"encoding/json"
	"time"
)

// ConfigCategory groups system settings
type ConfigCategory string

const (
	ConfigCategorySecurity    ConfigCategory = "security"
	ConfigCategoryPerformance ConfigCategory = "performance"
	ConfigCategoryFeatures    ConfigCategory = "features"
	ConfigCategoryUI          ConfigCategory = "ui"
)

// SystemConfig is a typed key/value settings record
type SystemConfig struct {
	ID          string          `json:"id"`
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Category    ConfigCategory  `json:"category"`
	Description string          `json:"description"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	UpdatedBy   string          `json:"updatedBy"`
}
