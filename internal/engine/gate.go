package engine

import "capacity-engine-backend/internal/model"

// GateInput bundles everything the sales gate needs to decide per-tier
// purchasability.
type GateInput struct {
	Status SystemStatus
	// Overrides are the persisted manual admin flags. A tier missing from
	// the map is treated as enabled.
	Overrides map[model.Tier]bool
	// SoldCounts are the current active certificate counts per tier,
	// checked against TierSaleCeilings.
	SoldCounts map[model.Tier]int
}

// GateResult is the per-tier sales decision plus the waitlist flag.
type GateResult struct {
	SalesEnabled    map[model.Tier]bool
	WaitlistEnabled bool
}

// Gate decides, per tier, whether new sales are permitted. A tier sells only
// when its manual override allows it, the system is not RED, and its sold
// count is below the beta ceiling. The waitlist opens as soon as any tier is
// gated off.
func Gate(in GateInput) GateResult {
	enabled := make(map[model.Tier]bool, len(TierSaleCeilings))
	waitlist := false
	for _, tier := range model.Tiers() {
		override, ok := in.Overrides[tier]
		if !ok {
			override = true
		}
		open := override && in.Status != StatusRed && in.SoldCounts[tier] < TierSaleCeilings[tier]
		enabled[tier] = open
		if !open {
			waitlist = true
		}
	}
	return GateResult{SalesEnabled: enabled, WaitlistEnabled: waitlist}
}
