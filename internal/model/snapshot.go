package model

import "time"

// CapacitySnapshot is one immutable, timestamped result of a capacity
// calculation. Rows are only ever appended; the current status is the row
// with the latest CalculatedAt.
type CapacitySnapshot struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CalculatedAt time.Time `gorm:"not null;index"`

	// Supply
	TotalProperties  int `gorm:"not null"`
	ActiveProperties int `gorm:"not null"`
	TotalSupplyWeeks int `gorm:"not null"`
	SafeCapacity     int `gorm:"not null"`

	// Demand
	CertificatesSilver    int `gorm:"not null"`
	CertificatesGold      int `gorm:"not null"`
	CertificatesPlatinum  int `gorm:"not null"`
	CertificatesSignature int `gorm:"not null"`
	ProjectedDemand       int `gorm:"not null"`

	// Status
	UtilizationPct float64 `gorm:"not null"`
	SystemStatus   string  `gorm:"size:8;not null"`

	// Sales gate
	SilverSalesEnabled    bool `gorm:"not null"`
	GoldSalesEnabled      bool `gorm:"not null"`
	PlatinumSalesEnabled  bool `gorm:"not null"`
	SignatureSalesEnabled bool `gorm:"not null"`

	// Waitlist
	WaitlistEnabled bool  `gorm:"not null"`
	WaitlistCount   int64 `gorm:"not null"`
}

// SalesEnabled returns the per-tier sales flags as a map so callers can
// iterate tiers generically instead of branching on field names.
func (s CapacitySnapshot) SalesEnabled() map[Tier]bool {
	return map[Tier]bool{
		TierSilver:    s.SilverSalesEnabled,
		TierGold:      s.GoldSalesEnabled,
		TierPlatinum:  s.PlatinumSalesEnabled,
		TierSignature: s.SignatureSalesEnabled,
	}
}

// SetSalesEnabled writes the per-tier sales flags from a map.
func (s *CapacitySnapshot) SetSalesEnabled(flags map[Tier]bool) {
	s.SilverSalesEnabled = flags[TierSilver]
	s.GoldSalesEnabled = flags[TierGold]
	s.PlatinumSalesEnabled = flags[TierPlatinum]
	s.SignatureSalesEnabled = flags[TierSignature]
}

// CertificateCounts returns the per-tier active certificate counts as a map.
func (s CapacitySnapshot) CertificateCounts() map[Tier]int {
	return map[Tier]int{
		TierSilver:    s.CertificatesSilver,
		TierGold:      s.CertificatesGold,
		TierPlatinum:  s.CertificatesPlatinum,
		TierSignature: s.CertificatesSignature,
	}
}

// SetCertificateCounts writes the per-tier certificate counts from a map.
func (s *CapacitySnapshot) SetCertificateCounts(counts map[Tier]int) {
	s.CertificatesSilver = counts[TierSilver]
	s.CertificatesGold = counts[TierGold]
	s.CertificatesPlatinum = counts[TierPlatinum]
	s.CertificatesSignature = counts[TierSignature]
}
