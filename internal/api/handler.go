package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"capacity-engine-backend/internal/status"
	"capacity-engine-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	status  *status.Service
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, svc *status.Service, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		status:  svc,
		webpush: webpushOptions,
	}
}
