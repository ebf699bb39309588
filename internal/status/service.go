package status

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"capacity-engine-backend/config"
	"capacity-engine-backend/internal/engine"
	"capacity-engine-backend/internal/model"
	"capacity-engine-backend/internal/store"
)

// Notifier receives tier-reopened events. Satisfied by the notification
// worker pool.
type Notifier interface {
	Dispatch(tier model.Tier)
}

// Service owns the capacity status cache: it serves the latest snapshot
// while fresh and recomputes it from repository data when stale.
type Service struct {
	cfg      *config.Config
	store    store.Store
	notifier Notifier
	now      func() time.Time
}

// NewService creates the status service. notifier may be nil, in which case
// tier-reopened events are dropped.
func NewService(cfg *config.Config, s store.Store, notifier Notifier) *Service {
	return &Service{
		cfg:      cfg,
		store:    s,
		notifier: notifier,
		now:      time.Now,
	}
}

// Current returns the latest snapshot if it is within the freshness window,
// recomputing otherwise. Two concurrent stale reads may both recompute; both
// appends succeed and the newest timestamp wins.
func (s *Service) Current(ctx context.Context) (*model.CapacitySnapshot, error) {
	snap, err := s.store.LatestSnapshot(ctx)
	if errors.Is(err, store.ErrNoSnapshot) {
		return s.Recompute(ctx)
	}
	if err != nil {
		return nil, err
	}
	if s.now().Sub(snap.CalculatedAt) > s.cfg.Engine.Freshness {
		return s.Recompute(ctx)
	}
	return snap, nil
}

// Recompute runs the full calculation pipeline and appends the result as a
// new snapshot. On repository failure it propagates the error and writes
// nothing; a snapshot is appended whole or not at all.
func (s *Service) Recompute(ctx context.Context) (*model.CapacitySnapshot, error) {
	certs, err := s.store.ActiveCertificates(ctx)
	if err != nil {
		return nil, err
	}
	props, err := s.store.ActiveProperties(ctx)
	if err != nil {
		return nil, err
	}
	totalProps, activeProps, err := s.store.PropertyCounts(ctx)
	if err != nil {
		return nil, err
	}
	waitlistCount, err := s.store.WaitlistCount(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.store.TierOverrides(ctx)
	if err != nil {
		return nil, err
	}

	res := engine.Calculate(certs, props)
	systemStatus := engine.ClassifyStatus(res.UtilizationPct)
	gate := engine.Gate(engine.GateInput{
		Status:     systemStatus,
		Overrides:  overrides,
		SoldCounts: res.CertificateCounts,
	})

	snap := &model.CapacitySnapshot{
		CalculatedAt:     s.now().UTC(),
		TotalProperties:  int(totalProps),
		ActiveProperties: int(activeProps),
		TotalSupplyWeeks: res.SupplyWeeks,
		SafeCapacity:     engine.SafeCapacity(res.SupplyWeeks),
		ProjectedDemand:  res.DemandWeeks,
		UtilizationPct:   res.UtilizationPct,
		SystemStatus:     string(systemStatus),
		WaitlistEnabled:  gate.WaitlistEnabled,
		WaitlistCount:    waitlistCount,
	}
	snap.SetCertificateCounts(res.CertificateCounts)
	snap.SetSalesEnabled(gate.SalesEnabled)

	prev, err := s.store.LatestSnapshot(ctx)
	if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		return nil, err
	}

	if err := s.store.AppendSnapshot(ctx, snap); err != nil {
		return nil, err
	}

	log.Printf("Capacity recomputed: %s", describe(snap))

	if prev != nil {
		s.notifyReopened(prev.SalesEnabled(), gate.SalesEnabled)
	}
	return snap, nil
}

// Toggle persists a manual per-tier override and appends a snapshot derived
// from the latest one with only that tier's flag changed. Returns
// store.ErrNoSnapshot when the log is empty.
func (s *Service) Toggle(ctx context.Context, tier model.Tier, enabled bool) (*model.CapacitySnapshot, error) {
	prev, err := s.store.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetTierOverride(ctx, tier, enabled); err != nil {
		return nil, err
	}

	next := engine.ApplyToggle(*prev, tier, enabled, s.now().UTC())
	if err := s.store.AppendSnapshot(ctx, &next); err != nil {
		return nil, err
	}

	s.notifyReopened(prev.SalesEnabled(), next.SalesEnabled())
	return &next, nil
}

// Projection builds the 15-year demand report. Read-only: it never touches
// the snapshot log.
func (s *Service) Projection(ctx context.Context) ([]engine.YearProjection, error) {
	certs, err := s.store.ActiveCertificates(ctx)
	if err != nil {
		return nil, err
	}
	props, err := s.store.ActiveProperties(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Project(certs, props, s.now().Year()), nil
}

// Run periodically recomputes the status when a recalc interval is
// configured. Without one, recomputation stays traffic-driven via Current.
func (s *Service) Run(ctx context.Context) {
	if s.cfg.Engine.RecalcInterval <= 0 {
		log.Println("Background recalculation is disabled; status refreshes on demand.")
		return
	}
	log.Printf("Starting background recalculation every %s", s.cfg.Engine.RecalcInterval)

	ticker := time.NewTicker(s.cfg.Engine.RecalcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.Recompute(ctx); err != nil {
				log.Printf("Background recalculation failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("Background recalculation stopping.")
			return
		}
	}
}

func (s *Service) notifyReopened(before, after map[model.Tier]bool) {
	if s.notifier == nil {
		return
	}
	for _, tier := range model.Tiers() {
		if !before[tier] && after[tier] {
			s.notifier.Dispatch(tier)
		}
	}
}

// DefaultSnapshot is the documented fail-open payload for read-only status
// displays when the repository is unreachable. It must never be used to
// authorize a purchase.
func DefaultSnapshot(now time.Time) *model.CapacitySnapshot {
	snap := &model.CapacitySnapshot{
		CalculatedAt: now.UTC(),
		SystemStatus: string(engine.StatusGreen),
	}
	flags := make(map[model.Tier]bool, len(model.Tiers()))
	for _, tier := range model.Tiers() {
		flags[tier] = true
	}
	snap.SetSalesEnabled(flags)
	return snap
}

// String renderer for log lines.
func describe(snap *model.CapacitySnapshot) string {
	return fmt.Sprintf("status=%s utilization=%.1f%% demand=%d supply=%d",
		snap.SystemStatus, snap.UtilizationPct, snap.ProjectedDemand, snap.TotalSupplyWeeks)
}
