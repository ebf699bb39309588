package engine

import (
	"github.com/shopspring/decimal"

	"capacity-engine-backend/internal/model"
)

// CapacityResult is the aggregate demand/supply picture for one point in time
// or one target year.
type CapacityResult struct {
	DemandWeeks    int
	SupplyWeeks    int
	UtilizationPct float64
	// ActiveCertificates is the number of certificates contributing to
	// DemandWeeks.
	ActiveCertificates int
	// CertificateCounts breaks ActiveCertificates down per tier.
	CertificateCounts map[model.Tier]int
}

// Calculate aggregates current demand and supply with no year filter.
func Calculate(certs []model.Certificate, props []model.SupplyProperty) CapacityResult {
	return calculate(certs, props, 0)
}

// CalculateForYear aggregates demand restricted to certificates whose
// validity window covers the target year. Supply has no validity window and
// is aggregated unchanged.
func CalculateForYear(certs []model.Certificate, props []model.SupplyProperty, year int) CapacityResult {
	return calculate(certs, props, year)
}

func calculate(certs []model.Certificate, props []model.SupplyProperty, year int) CapacityResult {
	counts := make(map[model.Tier]int, len(TierWeeksPerYear))
	for _, t := range model.Tiers() {
		counts[t] = 0
	}

	demand := 0
	active := 0
	for _, c := range certs {
		if c.Status != model.CertStatusActive {
			continue
		}
		if year != 0 && !c.ActiveInYear(year) {
			continue
		}
		active++
		counts[c.Tier]++
		if c.WeeksPerYear > 0 {
			demand += c.WeeksPerYear
		}
	}

	supply := 0
	for _, p := range props {
		if p.Status != model.PropertyStatusActive {
			continue
		}
		if p.TotalWeeksCapacity > 0 {
			supply += p.TotalWeeksCapacity
		}
	}

	return CapacityResult{
		DemandWeeks:        demand,
		SupplyWeeks:        supply,
		UtilizationPct:     Utilization(demand, supply),
		ActiveCertificates: active,
		CertificateCounts:  counts,
	}
}

// Utilization returns demand over supply as a percentage rounded half-up to
// one decimal place. A zero supply yields 0, never a division error.
func Utilization(demandWeeks, supplyWeeks int) float64 {
	if supplyWeeks <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(demandWeeks)).
		Div(decimal.NewFromInt(int64(supplyWeeks))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := pct.Float64()
	return f
}
