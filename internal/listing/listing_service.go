// Package listing owns the listing lifecycle state machine:
// ACTIVE → PENDING → {ACTIVE, CLOSED, ARCHIVED}, plus expiry bookkeeping.
package listing

import (
	"fmt"
	"time"

	"arendago/backend/internal/config"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
)

type Service struct {
	Storage storage.Storage
	Config  *config.Config
}

func NewService(s storage.Storage, cfg *config.Config) *Service {
	return &Service{Storage: s, Config: cfg}
}

// CreateFromDraft материализует черновик в объявление со статусом ACTIVE.
func (s *Service) CreateFromDraft(telegramID int64, draft models.DraftData) (*models.Listing, error) {
	user, err := s.Storage.GetUserByTelegramID(telegramID)
	if err != nil {
		return nil, fmt.Errorf("create from draft: %w", err)
	}

	expires := time.Now().Add(time.Duration(s.Config.ListingExpiryDays) * 24 * time.Hour)
	listing := &models.Listing{
		UserID:      user.ID,
		Type:        models.ListingType(draft.String("type")),
		Status:      models.StatusActive,
		District:    draft.String("district"),
		Contact:     draft.String("contact"),
		Description: draft.String("description"),
		PriceRange:  draft.String("priceRange"),
		ExpiresAt:   &expires,
	}

	if rooms, ok := draft.Int("rooms"); ok {
		listing.Rooms = &rooms
	}
	if price, ok := draft.Int("price"); ok {
		listing.Price = &price
	}
	listing.UtilitiesIncluded = draft.Bool("utilitiesIncluded")
	listing.Furniture = draft.Bool("furniture")
	listing.Appliances = draft.Bool("appliances")

	if tt := draft.String("tenantType"); tt != "" {
		listing.TenantType = tt
	}
	if spots, ok := draft.Int("spotsAvailable"); ok {
		listing.SpotsAvailable = &spots
	}
	if g := draft.String("myGender"); g != "" {
		listing.MyGender = models.Gender(g)
	}
	listing.OfferRoomType = draft.String("offerRoomType")
	if photos := draft.StringList("photos"); len(photos) > 0 {
		listing.PhotoFileIDs = photos
	}
	if when := draft.String("when"); when != "" && listing.Description != "" {
		listing.Description = listing.Description + "\n" + when
	} else if when != "" {
		listing.Description = when
	}
	if amenities := draft.String("amenities"); amenities != "" {
		if listing.Description != "" {
			listing.Description = amenities + "\n" + listing.Description
		} else {
			listing.Description = amenities
		}
	}

	if err := s.Storage.SaveListing(listing); err != nil {
		return nil, fmt.Errorf("create from draft: %w", err)
	}
	listing.User = *user
	return listing, nil
}

// Confirm подтверждает актуальность: статус ACTIVE, свежие confirmed_at
// и expires_at. Идемпотентна.
func (s *Service) Confirm(listingID uint) error {
	listing, err := s.Storage.GetListingByID(listingID)
	if err != nil {
		return err
	}
	now := time.Now()
	expires := now.Add(time.Duration(s.Config.ListingExpiryDays) * 24 * time.Hour)
	listing.Status = models.StatusActive
	listing.ConfirmedAt = &now
	listing.ExpiresAt = &expires
	return s.Storage.SaveListing(listing)
}

// Close закрывает объявление (сдано/найдено). Обратимо только через Reopen.
func (s *Service) Close(listingID uint) error {
	return s.setStatus(listingID, models.StatusClosed)
}

// MarkPending переводит объявление в ожидание подтверждения владельцем.
func (s *Service) MarkPending(listingID uint) error {
	return s.setStatus(listingID, models.StatusPending)
}

// Archive архивирует объявление (истечение срока или бан).
func (s *Service) Archive(listingID uint) error {
	return s.setStatus(listingID, models.StatusArchived)
}

// Reopen републикует закрытое объявление: тот же ряд, свежий срок.
func (s *Service) Reopen(listingID uint) error {
	return s.Confirm(listingID)
}

// MarkReminderSent фиксирует отправку напоминания и переводит объявление
// в PENDING до ответа владельца.
func (s *Service) MarkReminderSent(listingID uint) error {
	listing, err := s.Storage.GetListingByID(listingID)
	if err != nil {
		return err
	}
	now := time.Now()
	listing.ReminderSentAt = &now
	listing.Status = models.StatusPending
	return s.Storage.SaveListing(listing)
}

// SaveChannelMessageID сохраняет идентификатор сообщения в канале.
func (s *Service) SaveChannelMessageID(listingID uint, msgID int) error {
	listing, err := s.Storage.GetListingByID(listingID)
	if err != nil {
		return err
	}
	listing.MainChannelMsgID = &msgID
	return s.Storage.SaveListing(listing)
}

func (s *Service) FindByID(id uint) (*models.Listing, error) {
	return s.Storage.GetListingByID(id)
}

func (s *Service) FindActiveByUser(telegramID int64) ([]models.Listing, error) {
	return s.Storage.FindActiveByUser(telegramID)
}

// FindNeedingReminder — объявления для свипа напоминаний.
func (s *Service) FindNeedingReminder() ([]models.Listing, error) {
	threshold := time.Now().Add(-time.Duration(s.Config.ListingReminderDays) * 24 * time.Hour)
	return s.Storage.FindNeedingReminder(threshold)
}

// FindExpired — объявления для свипа архивации.
func (s *Service) FindExpired() ([]models.Listing, error) {
	return s.Storage.FindExpired(time.Now())
}

// Delete физически удаляет объявление в обход жизненного цикла (admin).
func (s *Service) Delete(id uint) error {
	return s.Storage.DeleteListing(id)
}

func (s *Service) setStatus(listingID uint, status models.ListingStatus) error {
	listing, err := s.Storage.GetListingByID(listingID)
	if err != nil {
		return err
	}
	listing.Status = status
	return s.Storage.SaveListing(listing)
}
