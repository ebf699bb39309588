package api

import (
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"capacity-engine-backend/config"
	"capacity-engine-backend/internal/model"
	"capacity-engine-backend/internal/status"
	"capacity-engine-backend/internal/store"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 0 // no response caching in tests
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Engine.Freshness = 5 * time.Minute
	return cfg
}

// setupTestRouter wires a router against a fresh in-memory database.
func setupTestRouter(t *testing.T) (*gin.Engine, store.Store, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Certificate{},
		&model.SupplyProperty{},
		&model.CapacitySnapshot{},
		&model.TierSalesOverride{},
		&model.WaitlistEntry{},
		&model.PushSubscription{},
	))

	cfg := testConfig()
	s := store.NewGormStore(db)
	svc := status.NewService(cfg, s, nil)
	router := NewRouter(cfg, s, svc, &webpush.Options{VAPIDPublicKey: "test-public-key"})
	return router, s, cfg
}

func seedMarket(t *testing.T, s store.Store) {
	t.Helper()
	require.NoError(t, s.DB().Create(&model.Certificate{
		Tier: model.TierSilver, WeeksPerYear: 4,
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2039, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    model.CertStatusActive,
	}).Error)
	require.NoError(t, s.DB().Create(&model.SupplyProperty{
		Name: "Casa Azul", TotalWeeksCapacity: 100,
		Status: model.PropertyStatusActive,
	}).Error)
}
