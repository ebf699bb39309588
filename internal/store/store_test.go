package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"capacity-engine-backend/internal/model"
)

// newTestStore opens a fresh in-memory SQLite database with migrations
// applied.
func newTestStore(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Certificate{},
		&model.SupplyProperty{},
		&model.CapacitySnapshot{},
		&model.TierSalesOverride{},
		&model.WaitlistEntry{},
		&model.PushSubscription{},
	)
	require.NoError(t, err)
	return NewGormStore(db)
}

func TestActiveCertificatesFiltersStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DB().Create(&model.Certificate{
		UserID: "u1", Tier: model.TierGold, WeeksPerYear: 1,
		StartDate: time.Now(), EndDate: time.Now().AddDate(15, 0, 0),
		Status: model.CertStatusActive,
	}).Error)
	require.NoError(t, s.DB().Create(&model.Certificate{
		UserID: "u2", Tier: model.TierGold, WeeksPerYear: 1,
		StartDate: time.Now(), EndDate: time.Now().AddDate(15, 0, 0),
		Status: model.CertStatusExpired,
	}).Error)

	certs, err := s.ActiveCertificates(ctx)
	require.NoError(t, err)
	require.Len(t, certs, 1)
	assert.Equal(t, "u1", certs[0].UserID)
}

func TestActiveCertificateCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.DB().Create(&model.Certificate{
			Tier: model.TierSilver, WeeksPerYear: 1,
			StartDate: time.Now(), EndDate: time.Now().AddDate(15, 0, 0),
			Status: model.CertStatusActive,
		}).Error)
	}
	require.NoError(t, s.DB().Create(&model.Certificate{
		Tier: model.TierPlatinum, WeeksPerYear: 2,
		StartDate: time.Now(), EndDate: time.Now().AddDate(15, 0, 0),
		Status: model.CertStatusSuspended,
	}).Error)

	counts, err := s.ActiveCertificateCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[model.TierSilver])
	assert.Equal(t, 0, counts[model.TierGold])
	assert.Equal(t, 0, counts[model.TierPlatinum], "suspended certificates do not count as sold")
	assert.Equal(t, 0, counts[model.TierSignature])
}

func TestSnapshotLogIsAppendOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LatestSnapshot(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	first := &model.CapacitySnapshot{
		CalculatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		SystemStatus: "GREEN", GoldSalesEnabled: true,
	}
	require.NoError(t, s.AppendSnapshot(ctx, first))

	second := &model.CapacitySnapshot{
		CalculatedAt: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC),
		SystemStatus: "YELLOW", GoldSalesEnabled: false,
	}
	// Even with an ID set, AppendSnapshot must create a new row.
	second.ID = first.ID
	require.NoError(t, s.AppendSnapshot(ctx, second))
	assert.NotEqual(t, first.ID, second.ID)

	latest, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "YELLOW", latest.SystemStatus)

	var count int64
	require.NoError(t, s.DB().Model(&model.CapacitySnapshot{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// The first row is still intact.
	var kept model.CapacitySnapshot
	require.NoError(t, s.DB().First(&kept, first.ID).Error)
	assert.Equal(t, "GREEN", kept.SystemStatus)
	assert.True(t, kept.GoldSalesEnabled)
}

func TestTierOverridesDefaultToEnabled(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	overrides, err := s.TierOverrides(ctx)
	require.NoError(t, err)
	for _, tier := range model.Tiers() {
		assert.True(t, overrides[tier], "tier %s should default to enabled", tier)
	}

	require.NoError(t, s.SetTierOverride(ctx, model.TierGold, false))
	overrides, err = s.TierOverrides(ctx)
	require.NoError(t, err)
	assert.False(t, overrides[model.TierGold])
	assert.True(t, overrides[model.TierSilver])

	// Upsert flips the same row back.
	require.NoError(t, s.SetTierOverride(ctx, model.TierGold, true))
	overrides, err = s.TierOverrides(ctx)
	require.NoError(t, err)
	assert.True(t, overrides[model.TierGold])

	var rows int64
	require.NoError(t, s.DB().Model(&model.TierSalesOverride{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestAddWaitlistEntryDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := &model.WaitlistEntry{Tier: model.TierSignature, Email: "ana@example.com", FullName: "Ana"}
	require.NoError(t, s.AddWaitlistEntry(ctx, entry))
	assert.Equal(t, model.WaitlistStatusWaiting, entry.Status)

	dup := &model.WaitlistEntry{Tier: model.TierSignature, Email: "ana@example.com"}
	err := s.AddWaitlistEntry(ctx, dup)
	assert.ErrorIs(t, err, ErrAlreadyWaitlisted)

	// Same email on a different tier is a separate entry.
	other := &model.WaitlistEntry{Tier: model.TierGold, Email: "ana@example.com"}
	require.NoError(t, s.AddWaitlistEntry(ctx, other))

	count, err := s.WaitlistCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPushSubscriptionsByTier(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePushSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example.com/a", P256DH: "k1", Auth: "a1", Tier: model.TierGold,
	}))
	require.NoError(t, s.SavePushSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example.com/b", P256DH: "k2", Auth: "a2", Tier: model.TierSilver,
	}))

	// Re-saving the same endpoint moves it to another tier instead of
	// duplicating it.
	require.NoError(t, s.SavePushSubscription(ctx, &model.PushSubscription{
		Endpoint: "https://push.example.com/b", P256DH: "k2", Auth: "a2", Tier: model.TierGold,
	}))

	subs, err := s.SubscriptionsForTier(ctx, model.TierGold)
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	require.NoError(t, s.DeletePushSubscription(ctx, "https://push.example.com/b"))
	subs, err = s.SubscriptionsForTier(ctx, model.TierGold)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestStoreErrorsPropagate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	_, err = s.ActiveCertificates(context.Background())
	assert.Error(t, err)

	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	_, err = s.LatestSnapshot(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}
