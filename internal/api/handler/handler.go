// Package handler exposes the HTTP surface: read-only listing queries,
// the admin lifecycle operations, blacklist checks and the live feed.
package handler

import (
	"github.com/gin-gonic/gin"

	"arendago/backend/internal/complaint"
	"arendago/backend/internal/config"
	"arendago/backend/internal/events"
	"arendago/backend/internal/listing"
	"arendago/backend/internal/storage"
)

type Handler struct {
	Storage    storage.Storage
	Listings   *listing.Service
	Complaints *complaint.Service
	Hub        *events.Hub
	Config     *config.Config
}

func NewHandler(st storage.Storage, listings *listing.Service, complaints *complaint.Service, hub *events.Hub, cfg *config.Config) *Handler {
	return &Handler{
		Storage:    st,
		Listings:   listings,
		Complaints: complaints,
		Hub:        hub,
		Config:     cfg,
	}
}

// RegisterRoutes wires the HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/auth/token", h.IssueToken)

		api.GET("/listings", h.ListListings)
		api.GET("/listings/:id", h.GetListing)
		api.GET("/stats", h.GetStats)
		api.GET("/blacklist", h.ListBlacklist)
		api.GET("/blacklist/check", h.CheckBlacklist)
		api.POST("/complaints", h.SubmitComplaint)

		admin := api.Group("/", h.AuthMiddleware())
		{
			admin.PATCH("listings/:id/confirm", h.ConfirmListing)
			admin.PATCH("listings/:id/close", h.CloseListing)
			admin.DELETE("listings/:id", h.DeleteListing)
		}
	}

	r.GET("/ws", h.ServeWebSocket)
}
