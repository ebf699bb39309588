package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"capacity-engine-backend/internal/engine"
	"capacity-engine-backend/internal/model"
	"capacity-engine-backend/internal/store"
)

type joinWaitlistRequest struct {
	Tier     string `json:"tier" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName"`
}

// JoinWaitlist handles POST /api/certificates/waitlist.
func (h *Handler) JoinWaitlist(c *gin.Context) {
	var req joinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters"})
		return
	}

	tier, err := model.ParseTier(req.Tier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &model.WaitlistEntry{Tier: tier, Email: req.Email, FullName: req.FullName}
	if err := h.store.AddWaitlistEntry(c.Request.Context(), entry); err != nil {
		if errors.Is(err, store.ErrAlreadyWaitlisted) {
			c.JSON(http.StatusOK, gin.H{
				"success":       true,
				"alreadyExists": true,
				"message":       "Ya estás en la lista de espera para este certificado",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join waitlist"})
		return
	}

	// Best effort: tell the caller how close the tier is to its beta
	// ceiling. A counting failure does not fail the join.
	remaining := 0
	if counts, err := h.store.ActiveCertificateCounts(c.Request.Context()); err == nil {
		if left := engine.TierSaleCeilings[tier] - counts[tier]; left > 0 {
			remaining = left
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":          true,
		"waitlistId":       entry.ID,
		"tier":             tier,
		"remainingForTier": remaining,
		"message":          "Te hemos agregado a la lista de espera. Te notificaremos cuando haya disponibilidad.",
	})
}
