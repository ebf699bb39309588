package engine

import (
	"time"

	"capacity-engine-backend/internal/model"
)

// ApplyToggle derives a new snapshot from the previous one with a single
// tier's sales flag changed and a fresh timestamp. The previous snapshot is
// never mutated; the returned value has a zero ID so persisting it appends a
// new row.
func ApplyToggle(prev model.CapacitySnapshot, tier model.Tier, enabled bool, now time.Time) model.CapacitySnapshot {
	next := prev
	next.ID = 0
	next.CalculatedAt = now

	flags := prev.SalesEnabled()
	flags[tier] = enabled
	next.SetSalesEnabled(flags)

	next.WaitlistEnabled = false
	for _, open := range flags {
		if !open {
			next.WaitlistEnabled = true
			break
		}
	}
	return next
}
