package model

import "time"

// Supply property statuses. Only active properties contribute to supply.
const (
	PropertyStatusActive        = "active"
	PropertyStatusPaused        = "paused"
	PropertyStatusExitScheduled = "exit_scheduled"
)

// SupplyProperty represents a capacity source onboarded by administrators.
type SupplyProperty struct {
	ID                 int64  `gorm:"primaryKey"`
	Name               string `gorm:"size:256;not null"`
	Country            string `gorm:"size:64"`
	City               string `gorm:"size:128"`
	TotalWeeksCapacity int    `gorm:"not null"`
	Status             string `gorm:"size:16;not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
