package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
)

// ListListings — страница объявлений с фильтрами.
// GET /api/listings?type=&status=&district=&minPrice=&maxPrice=&rooms=&page=&size=
func (h *Handler) ListListings(c *gin.Context) {
	var f storage.ListingFilter
	if v := c.Query("type"); v != "" {
		t := models.ListingType(v)
		f.Type = &t
	}
	if v := c.Query("status"); v != "" {
		s := models.ListingStatus(v)
		f.Status = &s
	}
	if v := c.Query("district"); v != "" {
		f.District = &v
	}
	if n, ok := queryInt(c, "minPrice"); ok {
		f.MinPrice = &n
	}
	if n, ok := queryInt(c, "maxPrice"); ok {
		f.MaxPrice = &n
	}
	if n, ok := queryInt(c, "rooms"); ok {
		f.Rooms = &n
	}
	if n, ok := queryInt(c, "page"); ok {
		f.Page = n
	}
	if n, ok := queryInt(c, "size"); ok {
		f.Size = n
	}

	listings, total, err := h.Storage.ListListings(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query listings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": listings, "total": total})
}

func (h *Handler) GetListing(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	l, err := h.Listings.FindByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}
	c.JSON(http.StatusOK, l)
}

// ConfirmListing — административное продление объявления.
func (h *Handler) ConfirmListing(c *gin.Context) {
	h.lifecycleOp(c, h.Listings.Confirm)
}

// CloseListing — административное закрытие объявления.
func (h *Handler) CloseListing(c *gin.Context) {
	h.lifecycleOp(c, h.Listings.Close)
}

// DeleteListing физически удаляет объявление.
func (h *Handler) DeleteListing(c *gin.Context) {
	h.lifecycleOp(c, h.Listings.Delete)
}

func (h *Handler) lifecycleOp(c *gin.Context, op func(id uint) error) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := op(id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
