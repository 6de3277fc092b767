package storage

import (
	"encoding/json"
	"log"
	"time"

	"arendago/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// ── Complaints ──

func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	if err := s.DB.Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint for listing %d: %v", complaint.ListingID, err)
		return err
	}
	return nil
}

// ComplaintExists — есть ли уже жалоба этого пользователя на это объявление.
func (s *Service) ComplaintExists(listingID, reporterID uint) (bool, error) {
	var n int64
	err := s.DB.Model(&models.Complaint{}).
		Where("listing_id = ? AND reporter_id = ?", listingID, reporterID).
		Count(&n).Error
	return n > 0, err
}

// CountComplaintsTowardBan считает жалобы, идущие в зачёт бана
// (мошенник / фото не совпадает).
func (s *Service) CountComplaintsTowardBan(listingID uint) (int64, error) {
	var n int64
	err := s.DB.Model(&models.Complaint{}).
		Where("listing_id = ? AND reason IN ?", listingID,
			[]models.ComplaintReason{models.ReasonScammer, models.ReasonPhotoMismatch}).
		Count(&n).Error
	return n, err
}

func (s *Service) CountComplaints() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Complaint{}).Count(&n).Error
	return n, err
}

// ── Blacklist ──

func (s *Service) SaveBlacklistEntry(entry *models.BlacklistEntry) error {
	return s.DB.Create(entry).Error
}

func (s *Service) BlacklistContains(telegramID int64) (bool, error) {
	var n int64
	err := s.DB.Model(&models.BlacklistEntry{}).
		Where("telegram_id = ?", telegramID).Count(&n).Error
	return n > 0, err
}

func (s *Service) BlacklistContainsPhone(phone string) (bool, error) {
	var n int64
	err := s.DB.Model(&models.BlacklistEntry{}).
		Where("phone = ?", phone).Count(&n).Error
	return n > 0, err
}

func (s *Service) ListBlacklist() ([]models.BlacklistEntry, error) {
	var entries []models.BlacklistEntry
	err := s.DB.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (s *Service) CountBlacklist() (int64, error) {
	var n int64
	err := s.DB.Model(&models.BlacklistEntry{}).Count(&n).Error
	return n, err
}

// ── Subscriptions ──

// FindActiveSubscriptions — активные подписки на тип объявления, район
// которых либо не задан (любой), либо совпадает.
func (s *Service) FindActiveSubscriptions(t models.ListingType, district string) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.DB.Preload("User").
		Where("active = ? AND listing_type = ? AND (district = '' OR district IS NULL OR district = ?)",
			true, t, district).
		Find(&subs).Error
	return subs, err
}

func (s *Service) FindSubscriptionsByUser(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.DB.Where("user_id = ?", userID).Find(&subs).Error
	return subs, err
}

func (s *Service) SaveSubscription(sub *models.Subscription) error {
	return s.DB.Save(sub).Error
}

// ── Notification log ──

func (s *Service) NotificationExists(userID, listingID uint) (bool, error) {
	var n int64
	err := s.DB.Model(&models.NotificationLog{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&n).Error
	return n > 0, err
}

func (s *Service) CountNotificationsSince(userID uint, since time.Time) (int64, error) {
	var n int64
	err := s.DB.Model(&models.NotificationLog{}).
		Where("user_id = ? AND sent_at > ?", userID, since).
		Count(&n).Error
	return n, err
}

func (s *Service) LogNotification(userID, listingID uint) error {
	return s.DB.Create(&models.NotificationLog{UserID: userID, ListingID: listingID}).Error
}

// ── Events ──

// PublishEvent публикует событие объявления в Redis Pub/Sub.
func (s *Service) PublishEvent(payload any) error {
	if s.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventsChannel, string(raw)).Err()
}

// SubscribeEvents подписывается на канал событий объявлений.
// Используется хабом live-ленты; в интерфейс Storage не входит.
func (s *Service) SubscribeEvents() *redis.PubSub {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Subscribe(s.Ctx, eventsChannel)
}
