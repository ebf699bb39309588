package model

import "time"

// Waitlist entry statuses.
const (
	WaitlistStatusWaiting  = "waiting"
	WaitlistStatusNotified = "notified"
)

// WaitlistEntry records a user waiting for a gated-off tier to re-open.
type WaitlistEntry struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Tier      Tier   `gorm:"size:16;not null;index;uniqueIndex:idx_waitlist_tier_email"`
	Email     string `gorm:"size:256;not null;uniqueIndex:idx_waitlist_tier_email"`
	FullName  string `gorm:"size:256"`
	Status    string `gorm:"size:16;not null;index"`
	CreatedAt time.Time
}

// TierSalesOverride is the manual admin flag for a tier. A missing row means
// the tier is enabled.
type TierSalesOverride struct {
	Tier      Tier `gorm:"primaryKey;size:16"`
	Enabled   bool `gorm:"not null"`
	UpdatedAt time.Time
}
