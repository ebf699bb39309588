package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"capacity-engine-backend/internal/model"
	"capacity-engine-backend/internal/store"
)

// Recalculate handles POST /api/admin/capacity/recalculate. It bypasses the
// freshness window and always appends a fresh snapshot.
func (h *Handler) Recalculate(c *gin.Context) {
	snap, err := h.status.Recompute(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to recalculate capacity status"})
		return
	}
	c.JSON(http.StatusOK, toStatusResponse(snap))
}

// GetProjection handles GET /api/admin/capacity/projection.
func (h *Handler) GetProjection(c *gin.Context) {
	projections, err := h.status.Projection(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "failed to calculate projection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projections": projections})
}

type toggleSalesRequest struct {
	Tier    string `json:"tier" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

// ToggleTierSales handles POST /api/admin/capacity/toggle-sales. It persists
// the manual override and appends a snapshot with only that tier's flag
// changed.
func (h *Handler) ToggleTierSales(c *gin.Context) {
	var req toggleSalesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters"})
		return
	}

	tier, err := model.ParseTier(req.Tier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := h.status.Toggle(c.Request.Context(), tier, *req.Enabled)
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no capacity status recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle sales"})
		return
	}

	verb := "disabled"
	if *req.Enabled {
		verb = "enabled"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"tier":         tier,
		"enabled":      *req.Enabled,
		"message":      fmt.Sprintf("%s sales %s successfully", tier, verb),
		"calculatedAt": snap.CalculatedAt,
	})
}
