// Package subscription manages persistent interest filters and the
// per-user notification switch.
package subscription

import (
	"arendago/backend/internal/models"
	"arendago/backend/internal/storage"
)

type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Subscribe создаёт подписку (тип, район) или реактивирует существующую.
func (s *Service) Subscribe(telegramID int64, t models.ListingType, district string) (*models.Subscription, error) {
	user, err := s.Storage.GetUserByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}

	existing, err := s.Storage.FindSubscriptionsByUser(user.ID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		sub := &existing[i]
		if sub.ListingType == t && sub.District == district {
			if sub.Active {
				return sub, nil
			}
			sub.Active = true
			return sub, s.Storage.SaveSubscription(sub)
		}
	}

	sub := &models.Subscription{
		UserID:      user.ID,
		ListingType: t,
		District:    district,
		Gender:      models.GenderAny,
		Active:      true,
	}
	return sub, s.Storage.SaveSubscription(sub)
}

// Unsubscribe деактивирует все подписки пользователя на данный тип.
func (s *Service) Unsubscribe(telegramID int64, t models.ListingType) error {
	user, err := s.Storage.GetUserByTelegramID(telegramID)
	if err != nil {
		return err
	}
	subs, err := s.Storage.FindSubscriptionsByUser(user.ID)
	if err != nil {
		return err
	}
	for i := range subs {
		sub := &subs[i]
		if sub.ListingType != t || !sub.Active {
			continue
		}
		sub.Active = false
		if err := s.Storage.SaveSubscription(sub); err != nil {
			return err
		}
	}
	return nil
}

// ListByUser возвращает все подписки пользователя.
func (s *Service) ListByUser(telegramID int64) ([]models.Subscription, error) {
	user, err := s.Storage.GetUserByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	return s.Storage.FindSubscriptionsByUser(user.ID)
}

// ToggleNotifications переключает общий флаг уведомлений и возвращает
// новое состояние.
func (s *Service) ToggleNotifications(telegramID int64) (bool, error) {
	user, err := s.Storage.GetUserByTelegramID(telegramID)
	if err != nil {
		return false, err
	}
	user.NotificationsEnabled = !user.NotificationsEnabled
	if err := s.Storage.SaveUser(user); err != nil {
		return false, err
	}
	return user.NotificationsEnabled, nil
}
