package engine

import "capacity-engine-backend/internal/model"

// Per-tier weekly allotment granted by a certificate.
var TierWeeksPerYear = map[model.Tier]int{
	model.TierSilver:    1,
	model.TierGold:      1,
	model.TierPlatinum:  2,
	model.TierSignature: 4,
}

// Per-tier sale ceilings for the 68-unit beta allocation. Once a tier's sold
// count reaches its ceiling, direct purchase of that tier closes and the
// waitlist opens.
var TierSaleCeilings = map[model.Tier]int{
	model.TierSilver:    20,
	model.TierGold:      26,
	model.TierPlatinum:  15,
	model.TierSignature: 7,
}

// BetaTotalCertificates is the overall beta allocation across all tiers.
const BetaTotalCertificates = 68

// SafetyFactor discounts raw supply to a conservative bookable capacity.
const SafetyFactor = 0.70

// ProjectionHorizonYears is the span of the forward-looking demand report.
const ProjectionHorizonYears = 15

// SafeCapacity returns the conservative bookable share of the total supply,
// rounded down.
func SafeCapacity(totalSupplyWeeks int) int {
	return int(float64(totalSupplyWeeks) * SafetyFactor)
}
