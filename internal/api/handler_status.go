package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"capacity-engine-backend/internal/model"
	"capacity-engine-backend/internal/status"
)

// statusResponse is the public shape of a capacity snapshot.
type statusResponse struct {
	SystemStatus           string              `json:"systemStatus"`
	CapacityUtilizationPct float64             `json:"capacityUtilizationPct"`
	TotalSupplyWeeks       int                 `json:"totalSupplyWeeks"`
	SafeCapacity           int                 `json:"safeCapacity"`
	ProjectedDemand        int                 `json:"projectedDemand"`
	ActiveProperties       int                 `json:"activeProperties"`
	Certificates           map[model.Tier]int  `json:"certificates"`
	SalesEnabled           map[model.Tier]bool `json:"salesEnabled"`
	WaitlistEnabled        bool                `json:"waitlistEnabled"`
	WaitlistCount          int64               `json:"waitlistCount"`
	CalculatedAt           time.Time           `json:"calculatedAt"`
}

func toStatusResponse(snap *model.CapacitySnapshot) statusResponse {
	return statusResponse{
		SystemStatus:           snap.SystemStatus,
		CapacityUtilizationPct: snap.UtilizationPct,
		TotalSupplyWeeks:       snap.TotalSupplyWeeks,
		SafeCapacity:           snap.SafeCapacity,
		ProjectedDemand:        snap.ProjectedDemand,
		ActiveProperties:       snap.ActiveProperties,
		Certificates:           snap.CertificateCounts(),
		SalesEnabled:           snap.SalesEnabled(),
		WaitlistEnabled:        snap.WaitlistEnabled,
		WaitlistCount:          snap.WaitlistCount,
		CalculatedAt:           snap.CalculatedAt,
	}
}

// GetCapacityStatus handles GET /api/capacity/status. When the repository is
// unreachable it degrades to a safe default payload so page rendering never
// blocks; that payload is for display only and must not authorize purchases.
func (h *Handler) GetCapacityStatus(c *gin.Context) {
	snap, err := h.status.Current(c.Request.Context())
	if err != nil {
		log.Printf("Failed to load capacity status, serving fail-open default: %v", err)
		snap = status.DefaultSnapshot(time.Now())
	}
	c.JSON(http.StatusOK, toStatusResponse(snap))
}
