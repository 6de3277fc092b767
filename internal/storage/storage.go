package storage

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"arendago/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned for point lookups that matched nothing.
var ErrNotFound = errors.New("record not found")

type Storage interface {
	// Users
	GetOrCreateUser(telegramID int64, username, firstName string) (*models.User, error)
	GetUserByTelegramID(telegramID int64) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	SaveUser(user *models.User) error
	SetUserState(telegramID int64, state models.UserState) error
	CountUsers() (int64, error)

	// Drafts
	GetDraft(userID uint) (models.DraftData, error)
	SaveDraftField(userID uint, key string, value any) error
	ClearDraft(userID uint) error

	// Listings
	SaveListing(listing *models.Listing) error
	GetListingByID(id uint) (*models.Listing, error)
	GetListingForUpdate(id uint) (*models.Listing, error)
	FindActiveByTypeAndDistrict(t models.ListingType, district string) ([]models.Listing, error)
	FindActiveByUser(telegramID int64) ([]models.Listing, error)
	FindNeedingReminder(threshold time.Time) ([]models.Listing, error)
	FindExpired(now time.Time) ([]models.Listing, error)
	DeleteListing(id uint) error
	ListListings(f ListingFilter) ([]models.Listing, int64, error)
	CountListingsByStatus(status models.ListingStatus) (int64, error)
	CountActiveByType(t models.ListingType) (int64, error)
	CountListings() (int64, error)

	// Complaints / blacklist
	SaveComplaint(complaint *models.Complaint) error
	ComplaintExists(listingID, reporterID uint) (bool, error)
	CountComplaintsTowardBan(listingID uint) (int64, error)
	CountComplaints() (int64, error)
	SaveBlacklistEntry(entry *models.BlacklistEntry) error
	BlacklistContains(telegramID int64) (bool, error)
	BlacklistContainsPhone(phone string) (bool, error)
	ListBlacklist() ([]models.BlacklistEntry, error)
	CountBlacklist() (int64, error)

	// Subscriptions
	FindActiveSubscriptions(t models.ListingType, district string) ([]models.Subscription, error)
	FindSubscriptionsByUser(userID uint) ([]models.Subscription, error)
	SaveSubscription(sub *models.Subscription) error

	// Notification log
	NotificationExists(userID, listingID uint) (bool, error)
	CountNotificationsSince(userID uint, since time.Time) (int64, error)
	LogNotification(userID, listingID uint) error

	// Transaction runs fn against a Storage bound to one database
	// transaction; returning an error rolls everything back.
	Transaction(fn func(tx Storage) error) error

	// Ban cache (Redis)
	CacheBan(telegramID int64, until time.Time) error
	IsBanCached(telegramID int64) (bool, error)

	// PublishEvent fans a listing event out via Redis pub/sub.
	PublishEvent(payload any) error
}

// eventsChannel is the Redis pub/sub channel carrying listing events.
const eventsChannel = "listing_events"

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Transaction runs fn inside a single database transaction. The Redis
// client is shared; only the SQL side is transactional.
func (s *Service) Transaction(fn func(tx Storage) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Service{DB: tx, Redis: s.Redis, Ctx: s.Ctx})
	})
}

// ── Users ──

// GetOrCreateUser находит пользователя по Telegram ID или создаёт его
// при первом контакте.
func (s *Service) GetOrCreateUser(telegramID int64, username, firstName string) (*models.User, error) {
	var user models.User
	defaults := models.User{
		TelegramID:           telegramID,
		Username:             username,
		FirstName:            firstName,
		State:                models.StateIdle,
		NotificationsEnabled: true,
	}
	result := s.DB.Where("telegram_id = ?", telegramID).FirstOrCreate(&user, defaults)
	if result.Error != nil {
		log.Printf("ERROR: Failed to get/create user %d: %v", telegramID, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("INFO: New user %d registered (id=%d)", telegramID, user.ID)
	}
	return &user, nil
}

func (s *Service) GetUserByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := s.DB.Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) SetUserState(telegramID int64, state models.UserState) error {
	return s.DB.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("state", state).Error
}

func (s *Service) CountUsers() (int64, error) {
	var n int64
	err := s.DB.Model(&models.User{}).Count(&n).Error
	return n, err
}

// ── Drafts ──

// GetDraft возвращает данные черновика; отсутствие черновика — пустая карта.
func (s *Service) GetDraft(userID uint) (models.DraftData, error) {
	var draft models.Draft
	err := s.DB.Where("user_id = ?", userID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DraftData{}, nil
	}
	if err != nil {
		return nil, err
	}
	if draft.Data == nil {
		return models.DraftData{}, nil
	}
	return draft.Data, nil
}

// SaveDraftField записывает одно поле черновика, создавая черновик лениво.
func (s *Service) SaveDraftField(userID uint, key string, value any) error {
	var draft models.Draft
	err := s.DB.Where("user_id = ?", userID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		draft = models.Draft{UserID: userID, Data: models.DraftData{}}
	} else if err != nil {
		return err
	}
	if draft.Data == nil {
		draft.Data = models.DraftData{}
	}
	draft.Data[key] = value
	return s.DB.Save(&draft).Error
}

// ClearDraft очищает данные черновика, не удаляя сам ряд.
func (s *Service) ClearDraft(userID uint) error {
	return s.DB.Model(&models.Draft{}).
		Where("user_id = ?", userID).
		Update("data", models.DraftData{}).Error
}

// ── Ban cache ──

// CacheBan записывает флаг бана в Redis с TTL до конца ограничения.
func (s *Service) CacheBan(telegramID int64, until time.Time) error {
	if s.Redis == nil {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	key := banKey(telegramID)
	return s.Redis.Set(s.Ctx, key, "banned", ttl).Err()
}

// IsBanCached проверяет статус бана в Redis (быстрая проверка; источник
// истины — поле BannedUntil в базе).
func (s *Service) IsBanCached(telegramID int64) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	status, err := s.Redis.Get(s.Ctx, banKey(telegramID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status != "", nil
}

func banKey(telegramID int64) string {
	return "ban:" + strconv.FormatInt(telegramID, 10)
}
