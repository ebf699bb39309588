package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"capacity-engine-backend/internal/model"
)

func TestApplyToggle(t *testing.T) {
	prev := model.CapacitySnapshot{
		ID:                    7,
		CalculatedAt:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		TotalProperties:       4,
		ActiveProperties:      3,
		TotalSupplyWeeks:      144,
		SafeCapacity:          100,
		ProjectedDemand:       40,
		UtilizationPct:        27.8,
		SystemStatus:          string(StatusGreen),
		SilverSalesEnabled:    true,
		GoldSalesEnabled:      true,
		PlatinumSalesEnabled:  true,
		SignatureSalesEnabled: false,
		WaitlistEnabled:       true,
		WaitlistCount:         2,
	}

	now := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)
	next := ApplyToggle(prev, model.TierGold, false, now)

	// Only the toggled flag and the timestamp change; the ID is cleared so
	// the result appends instead of overwriting.
	assert.Equal(t, int64(0), next.ID)
	assert.Equal(t, now, next.CalculatedAt)
	assert.False(t, next.GoldSalesEnabled)
	assert.True(t, next.SilverSalesEnabled)
	assert.True(t, next.PlatinumSalesEnabled)
	assert.False(t, next.SignatureSalesEnabled)
	assert.Equal(t, prev.UtilizationPct, next.UtilizationPct)
	assert.Equal(t, prev.WaitlistCount, next.WaitlistCount)
	assert.True(t, next.WaitlistEnabled)

	// The previous snapshot value is untouched.
	assert.True(t, prev.GoldSalesEnabled)
	assert.Equal(t, int64(7), prev.ID)
}

func TestApplyToggleEnable(t *testing.T) {
	prev := model.CapacitySnapshot{
		SilverSalesEnabled:    false,
		GoldSalesEnabled:      true,
		PlatinumSalesEnabled:  true,
		SignatureSalesEnabled: true,
		WaitlistEnabled:       true,
	}
	next := ApplyToggle(prev, model.TierSilver, true, time.Now())
	assert.True(t, next.SilverSalesEnabled)
	assert.False(t, next.WaitlistEnabled, "no gated tier left, waitlist closes")
}
