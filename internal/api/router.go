package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"capacity-engine-backend/config"
	"capacity-engine-backend/internal/auth"
	"capacity-engine-backend/internal/mw"
	"capacity-engine-backend/internal/status"
	"capacity-engine-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, svc *status.Service, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, svc, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// A zero TTL disables response caching entirely.
	statusHandlers := []gin.HandlerFunc{handler.GetCapacityStatus}
	if cfg.Server.CacheTTLSeconds > 0 {
		cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
		cacheStore := cache.New(cacheTTL, 10*time.Minute)
		statusHandlers = []gin.HandlerFunc{mw.Cache(cacheStore, cacheTTL), handler.GetCapacityStatus}
	}

	secret := cfg.Auth.JWTSecret

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public surface.
		api.GET("/capacity/status", statusHandlers...)
		api.POST("/certificates/waitlist", handler.JoinWaitlist)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		// Administrative surface, capability-gated.
		admin := api.Group("/admin/capacity")
		{
			admin.POST("/recalculate",
				mw.RequireCapability(secret, auth.CanForceRecalculation), handler.Recalculate)
			admin.GET("/projection",
				mw.RequireCapability(secret, auth.CanViewProjections), handler.GetProjection)
			admin.POST("/toggle-sales",
				mw.RequireCapability(secret, auth.CanToggleSalesGate), handler.ToggleTierSales)
		}
	}

	return r
}
