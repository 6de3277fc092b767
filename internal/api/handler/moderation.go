package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
)

// GetStats — сводка по пользователям, объявлениям и модерации.
func (h *Handler) GetStats(c *gin.Context) {
	users, err := h.Storage.CountUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	listings, _ := h.Storage.CountListings()
	complaints, _ := h.Storage.CountComplaints()
	blacklisted, _ := h.Storage.CountBlacklist()

	byStatus := gin.H{}
	for _, status := range []models.ListingStatus{
		models.StatusActive, models.StatusPending, models.StatusExpired,
		models.StatusClosed, models.StatusArchived,
	} {
		n, _ := h.Storage.CountListingsByStatus(status)
		byStatus[string(status)] = n
	}

	byType := gin.H{}
	for _, t := range []models.ListingType{
		models.RentOut, models.RentIn, models.RentRoomIn,
		models.RoommateSeek, models.RoommateOffer, models.CommercialRentOut,
	} {
		n, _ := h.Storage.CountActiveByType(t)
		byType[string(t)] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"users":            users,
		"listings":         listings,
		"listingsByStatus": byStatus,
		"activeByType":     byType,
		"complaints":       complaints,
		"blacklisted":      blacklisted,
	})
}

// ListBlacklist возвращает записи чёрного списка, новые первыми.
func (h *Handler) ListBlacklist(c *gin.Context) {
	entries, err := h.Storage.ListBlacklist()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blacklist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// CheckBlacklist — проверка контакта перед сделкой.
// GET /api/blacklist/check?telegramId=...&phone=...
func (h *Handler) CheckBlacklist(c *gin.Context) {
	var found bool
	if v := c.Query("telegramId"); v != "" {
		tid, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid telegramId"})
			return
		}
		listed, err := h.Storage.BlacklistContains(tid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Check failed"})
			return
		}
		found = found || listed
	}
	if v := c.Query("phone"); v != "" {
		listed, err := h.Storage.BlacklistContainsPhone(v)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Check failed"})
			return
		}
		found = found || listed
	}
	c.JSON(http.StatusOK, gin.H{"blacklisted": found})
}

// SubmitComplaint — приём жалобы через HTTP (веб-форма на канале).
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var req struct {
		ListingID          uint   `json:"listingId" binding:"required"`
		ReporterTelegramID int64  `json:"reporterTelegramId" binding:"required"`
		Reason             string `json:"reason" binding:"required"`
		Description        string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listingId, reporterTelegramId and reason are required"})
		return
	}

	outcome, err := h.Complaints.Submit(req.ListingID, req.ReporterTelegramID,
		models.ComplaintReason(req.Reason), req.Description)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing or reporter not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accepted":      outcome.Accepted,
		"listingClosed": outcome.ListingClosed,
		"banned":        outcome.Banned,
	})
}
