package engine

// RiskLevel is the projection-scale classification of a utilization figure.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// SystemStatus is the live-status classification. It shares the risk scale's
// thresholds; only the labels differ.
type SystemStatus string

const (
	StatusGreen  SystemStatus = "GREEN"
	StatusYellow SystemStatus = "YELLOW"
	StatusOrange SystemStatus = "ORANGE"
	StatusRed    SystemStatus = "RED"
)

// Classification thresholds, evaluated highest first. Lower bounds are
// inclusive: exactly 85.0 is CRITICAL/RED.
const (
	thresholdCritical = 85
	thresholdHigh     = 75
	thresholdMedium   = 60
)

// ClassifyRisk maps a utilization percentage onto the projection scale.
func ClassifyRisk(utilizationPct float64) RiskLevel {
	switch {
	case utilizationPct >= thresholdCritical:
		return RiskCritical
	case utilizationPct >= thresholdHigh:
		return RiskHigh
	case utilizationPct >= thresholdMedium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ClassifyStatus maps a utilization percentage onto the system-status scale.
func ClassifyStatus(utilizationPct float64) SystemStatus {
	switch ClassifyRisk(utilizationPct) {
	case RiskCritical:
		return StatusRed
	case RiskHigh:
		return StatusOrange
	case RiskMedium:
		return StatusYellow
	default:
		return StatusGreen
	}
}
