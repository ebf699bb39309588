package model

import "time"

// PushSubscription holds a browser push subscription for a user who wants to
// be notified when sales of a tier re-open.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Tier      Tier      `gorm:"size:16;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}
