package model

import "time"

// Certificate statuses. Only active certificates contribute to demand.
const (
	CertStatusActive    = "active"
	CertStatusExpired   = "expired"
	CertStatusSuspended = "suspended"
)

// Certificate represents an issued right-of-use grant.
type Certificate struct {
	ID               int64     `gorm:"primaryKey"`
	UserID           string    `gorm:"size:64;index"`
	Tier             Tier      `gorm:"size:16;not null;index"`
	WeeksPerYear     int       `gorm:"not null"`
	StartDate        time.Time `gorm:"not null"`
	EndDate          time.Time `gorm:"not null"`
	Status           string    `gorm:"size:16;not null;index"`
	PurchasePriceUSD int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ActiveInYear reports whether the certificate's validity window covers the
// given calendar year. Both boundary years count as covered.
func (c Certificate) ActiveInYear(year int) bool {
	return year >= c.StartDate.Year() && year <= c.EndDate.Year()
}
