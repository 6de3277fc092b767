package models

import "time"

// NotificationLog — одна строка на отправленное уведомление (user, listing).
// Используется для дедупликации и суточного лимита.
type NotificationLog struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index:idx_notification_dedup"`
	ListingID uint `gorm:"not null;index:idx_notification_dedup"`
	SentAt    time.Time `gorm:"autoCreateTime"`
}

func (NotificationLog) TableName() string { return "notification_log" }
