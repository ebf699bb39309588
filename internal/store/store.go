package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"capacity-engine-backend/internal/model"
)

// ErrNoSnapshot is returned when the snapshot log is still empty.
var ErrNoSnapshot = errors.New("no capacity snapshot recorded")

// ErrAlreadyWaitlisted is returned when an email is already waiting for the
// same tier.
var ErrAlreadyWaitlisted = errors.New("already on the waitlist for this tier")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ActiveCertificates(ctx context.Context) ([]model.Certificate, error)
	ActiveProperties(ctx context.Context) ([]model.SupplyProperty, error)
	PropertyCounts(ctx context.Context) (total, active int64, err error)
	ActiveCertificateCounts(ctx context.Context) (map[model.Tier]int, error)

	LatestSnapshot(ctx context.Context) (*model.CapacitySnapshot, error)
	AppendSnapshot(ctx context.Context, snap *model.CapacitySnapshot) error

	TierOverrides(ctx context.Context) (map[model.Tier]bool, error)
	SetTierOverride(ctx context.Context, tier model.Tier, enabled bool) error

	WaitlistCount(ctx context.Context) (int64, error)
	AddWaitlistEntry(ctx context.Context, entry *model.WaitlistEntry) error

	SubscriptionsForTier(ctx context.Context, tier model.Tier) ([]model.PushSubscription, error)
	SavePushSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeletePushSubscription(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ActiveCertificates(ctx context.Context) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := s.db.WithContext(ctx).
		Where("status = ?", model.CertStatusActive).
		Find(&certs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active certificates: %w", err)
	}
	return certs, nil
}

func (s *gormStore) ActiveProperties(ctx context.Context) ([]model.SupplyProperty, error) {
	var props []model.SupplyProperty
	err := s.db.WithContext(ctx).
		Where("status = ?", model.PropertyStatusActive).
		Find(&props).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active properties: %w", err)
	}
	return props, nil
}

func (s *gormStore) PropertyCounts(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := s.db.WithContext(ctx).Model(&model.SupplyProperty{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count properties: %w", err)
	}
	err := s.db.WithContext(ctx).Model(&model.SupplyProperty{}).
		Where("status = ?", model.PropertyStatusActive).
		Count(&active).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count active properties: %w", err)
	}
	return total, active, nil
}

func (s *gormStore) ActiveCertificateCounts(ctx context.Context) (map[model.Tier]int, error) {
	type aggRow struct {
		Tier  model.Tier
		Total int
	}
	var rows []aggRow
	err := s.db.WithContext(ctx).Model(&model.Certificate{}).
		Select("tier, COUNT(*) as total").
		Where("status = ?", model.CertStatusActive).
		Group("tier").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate certificate counts: %w", err)
	}

	counts := make(map[model.Tier]int, len(model.Tiers()))
	for _, tier := range model.Tiers() {
		counts[tier] = 0
	}
	for _, r := range rows {
		counts[r.Tier] = r.Total
	}
	return counts, nil
}

func (s *gormStore) LatestSnapshot(ctx context.Context) (*model.CapacitySnapshot, error) {
	var snap model.CapacitySnapshot
	err := s.db.WithContext(ctx).
		Order("calculated_at DESC").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest snapshot: %w", err)
	}
	return &snap, nil
}

// AppendSnapshot writes a snapshot as a new row. Snapshots are never updated
// in place; the log is the audit trail.
func (s *gormStore) AppendSnapshot(ctx context.Context, snap *model.CapacitySnapshot) error {
	snap.ID = 0
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return fmt.Errorf("failed to append capacity snapshot: %w", err)
	}
	return nil
}

func (s *gormStore) TierOverrides(ctx context.Context) (map[model.Tier]bool, error) {
	var rows []model.TierSalesOverride
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tier overrides: %w", err)
	}

	overrides := make(map[model.Tier]bool, len(model.Tiers()))
	for _, tier := range model.Tiers() {
		overrides[tier] = true
	}
	for _, r := range rows {
		overrides[r.Tier] = r.Enabled
	}
	return overrides, nil
}

func (s *gormStore) SetTierOverride(ctx context.Context, tier model.Tier, enabled bool) error {
	row := model.TierSalesOverride{Tier: tier, Enabled: enabled, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tier"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to set override for tier %s: %w", tier, err)
	}
	return nil
}

func (s *gormStore) WaitlistCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.WaitlistEntry{}).
		Where("status = ?", model.WaitlistStatusWaiting).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}
	return count, nil
}

func (s *gormStore) AddWaitlistEntry(ctx context.Context, entry *model.WaitlistEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&model.WaitlistEntry{}).
			Where("tier = ? AND email = ? AND status = ?", entry.Tier, entry.Email, model.WaitlistStatusWaiting).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check existing waitlist entry: %w", err)
		}
		if existing > 0 {
			return ErrAlreadyWaitlisted
		}
		entry.Status = model.WaitlistStatusWaiting
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create waitlist entry: %w", err)
		}
		return nil
	})
}

func (s *gormStore) SubscriptionsForTier(ctx context.Context, tier model.Tier) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Where("tier = ?", tier).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for tier %s: %w", tier, err)
	}
	return subs, nil
}

func (s *gormStore) SavePushSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "tier"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to save push subscription: %w", err)
	}
	return nil
}

func (s *gormStore) DeletePushSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return nil
}
