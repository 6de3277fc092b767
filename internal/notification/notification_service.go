// Package notification delivers subscriber notifications for freshly
// published listings, honoring the per-user daily cap and dedup log.
package notification

import (
	"log"
	"time"

	"arendago/backend/internal/config"
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
	"arendago/backend/internal/transport"
)

type Service struct {
	Storage storage.Storage
	Sender  transport.Sender
	Config  *config.Config
}

func NewService(s storage.Storage, sender transport.Sender, cfg *config.Config) *Service {
	return &Service{Storage: s, Sender: sender, Config: cfg}
}

// NotifySubscribers рассылает новое объявление подписчикам. Охват:
// активные подписки на (тип, район-или-любой), минус владелец, минус
// забаненные и отключившие уведомления, минус уже уведомлённые об этом
// объявлении, минус исчерпавшие суточный лимит. Лог пишется до
// отправки, чтобы проверка лимита оставалась идемпотентной при
// повторах.
func (s *Service) NotifySubscribers(listing *models.Listing) {
	subs, err := s.Storage.FindActiveSubscriptions(listing.Type, listing.District)
	if err != nil {
		log.Printf("ERROR: Failed to load subscriptions for listing %d: %v", listing.ID, err)
		return
	}

	startOfDay := startOfToday()
	notified := make(map[uint]struct{}, len(subs))

	for _, sub := range subs {
		user := sub.User
		if _, done := notified[sub.UserID]; done {
			continue
		}
		if sub.UserID == listing.UserID {
			continue
		}
		if user.TelegramID == 0 {
			log.Printf("WARN: Subscription %d has no preloaded user, skipping", sub.ID)
			continue
		}
		if user.IsBanned() || !user.NotificationsEnabled {
			continue
		}

		already, err := s.Storage.NotificationExists(sub.UserID, listing.ID)
		if err != nil {
			log.Printf("ERROR: Notification dedup check failed for user %d: %v", sub.UserID, err)
			continue
		}
		if already {
			continue
		}

		sent, err := s.Storage.CountNotificationsSince(sub.UserID, startOfDay)
		if err != nil {
			log.Printf("ERROR: Daily cap check failed for user %d: %v", sub.UserID, err)
			continue
		}
		if sent >= int64(s.Config.MaxNotificationsPerDay) {
			continue
		}

		// Сначала лог, потом отправка: потерянное сообщение лучше
		// пробитого лимита.
		if err := s.Storage.LogNotification(sub.UserID, listing.ID); err != nil {
			log.Printf("ERROR: Failed to log notification (user %d, listing %d): %v", sub.UserID, listing.ID, err)
			continue
		}
		notified[sub.UserID] = struct{}{}
		s.Sender.SendNotification(user.TelegramID, listing)
	}
}

// startOfToday — локальная полночь как граница суточного лимита.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
