package models

import "time"

// BlacklistEntry — денормализованная запись о забаненном владельце:
// его контакты плюс объявление, из-за которого случился бан.
// Создаётся ровно один раз на событие бана.
type BlacklistEntry struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	TelegramID int64 `gorm:"index" json:"telegramId"`
	Username   string `json:"username,omitempty"`
	Phone      string `gorm:"index" json:"phone,omitempty"`

	Reason         string `gorm:"not null" json:"reason"`
	ComplaintCount int    `gorm:"default:3" json:"complaintCount"`

	ListingID *uint    `json:"listingId,omitempty"`
	Listing   *Listing `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the short table name used by the original schema.
func (BlacklistEntry) TableName() string { return "blacklist" }
