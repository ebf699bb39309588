package engine

import "capacity-engine-backend/internal/model"

// YearProjection is one row of the forward-looking demand report.
type YearProjection struct {
	Year               int       `json:"year"`
	YearOffset         int       `json:"yearOffset"`
	DemandWeeks        int       `json:"demandWeeks"`
	SupplyWeeks        int       `json:"supplyWeeks"`
	UtilizationPct     float64   `json:"utilizationPct"`
	RiskLevel          RiskLevel `json:"riskLevel"`
	ActiveCertificates int       `json:"activeCertificates"`
}

// Project extrapolates demand for each year of the horizon starting at
// startYear. A certificate contributes to a year when its validity window
// covers it. Supply is held constant across the horizon; future supply
// growth is deliberately not modeled.
func Project(certs []model.Certificate, props []model.SupplyProperty, startYear int) []YearProjection {
	out := make([]YearProjection, 0, ProjectionHorizonYears)
	for offset := 0; offset < ProjectionHorizonYears; offset++ {
		year := startYear + offset
		res := CalculateForYear(certs, props, year)
		out = append(out, YearProjection{
			Year:               year,
			YearOffset:         offset,
			DemandWeeks:        res.DemandWeeks,
			SupplyWeeks:        res.SupplyWeeks,
			UtilizationPct:     res.UtilizationPct,
			RiskLevel:          ClassifyRisk(res.UtilizationPct),
			ActiveCertificates: res.ActiveCertificates,
		})
	}
	return out
}
