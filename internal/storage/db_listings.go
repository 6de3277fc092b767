package storage

import (
	"errors"
	"log"
	"time"

	"arendago/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListingFilter описывает фильтры READ-запросов HTTP API.
type ListingFilter struct {
	Type     *models.ListingType
	Status   *models.ListingStatus
	District *string
	MinPrice *int
	MaxPrice *int
	Rooms    *int
	Page     int
	Size     int
}

func (s *Service) SaveListing(listing *models.Listing) error {
	return s.DB.Save(listing).Error
}

func (s *Service) GetListingByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.DB.Preload("User").First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListingForUpdate загружает объявление под блокировкой строки
// (SELECT ... FOR UPDATE). Использовать только внутри Transaction.
func (s *Service) GetListingForUpdate(id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("User").
		First(&listing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// FindActiveByTypeAndDistrict — активные объявления по типу и району,
// основа матчинга встречных объявлений.
func (s *Service) FindActiveByTypeAndDistrict(t models.ListingType, district string) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Preload("User").
		Where("type = ? AND district = ? AND status = ?", t, district, models.StatusActive).
		Find(&listings).Error
	if err != nil {
		log.Printf("ERROR: Failed to query active %s listings in %q: %v", t, district, err)
		return nil, err
	}
	return listings, nil
}

// FindActiveByUser — объявления пользователя в статусах ACTIVE/PENDING
// (для раздела "Мои объявления").
func (s *Service) FindActiveByUser(telegramID int64) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.
		Joins("JOIN users ON users.id = listings.user_id").
		Where("users.telegram_id = ? AND listings.status IN ?",
			telegramID, []models.ListingStatus{models.StatusActive, models.StatusPending}).
		Find(&listings).Error
	return listings, err
}

// FindNeedingReminder — активные объявления старше порога, по которым
// напоминание ещё не отправлялось.
func (s *Service) FindNeedingReminder(threshold time.Time) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Preload("User").
		Where("status = ? AND reminder_sent_at IS NULL AND created_at < ?",
			models.StatusActive, threshold).
		Find(&listings).Error
	return listings, err
}

// FindExpired — объявления ACTIVE/PENDING с истёкшим expires_at.
func (s *Service) FindExpired(now time.Time) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.DB.Preload("User").
		Where("status IN ? AND expires_at < ?",
			[]models.ListingStatus{models.StatusActive, models.StatusPending}, now).
		Find(&listings).Error
	return listings, err
}

// DeleteListing физически удаляет объявление в обход жизненного цикла.
// Только для административного API.
func (s *Service) DeleteListing(id uint) error {
	result := s.DB.Delete(&models.Listing{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListListings возвращает страницу объявлений по фильтру и общее число строк.
func (s *Service) ListListings(f ListingFilter) ([]models.Listing, int64, error) {
	q := s.DB.Model(&models.Listing{})
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	} else {
		// По умолчанию — только активные
		q = q.Where("status = ?", models.StatusActive)
	}
	if f.District != nil {
		q = q.Where("district = ?", *f.District)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Rooms != nil {
		q = q.Where("rooms = ?", *f.Rooms)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	size := f.Size
	if size <= 0 {
		size = 20
	}
	var listings []models.Listing
	err := q.Order("created_at DESC").
		Offset(f.Page * size).
		Limit(size).
		Find(&listings).Error
	return listings, total, err
}

func (s *Service) CountListingsByStatus(status models.ListingStatus) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Listing{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *Service) CountActiveByType(t models.ListingType) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Listing{}).
		Where("type = ? AND status = ?", t, models.StatusActive).Count(&n).Error
	return n, err
}

func (s *Service) CountListings() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Listing{}).Count(&n).Error
	return n, err
}
