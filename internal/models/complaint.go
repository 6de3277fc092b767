package models

import "time"

// Complaint — жалоба на объявление. На одно объявление от одного
// пользователя допускается максимум одна жалоба (кроме "уже сдана").
type Complaint struct {
	ID         uint `gorm:"primaryKey"`
	ListingID  uint `gorm:"not null;index:idx_complaint_dedup"`
	Listing    Listing
	ReporterID uint `gorm:"not null;index:idx_complaint_dedup"`
	Reporter   User

	Reason      ComplaintReason `gorm:"type:varchar(30);not null"`
	Description string

	CreatedAt time.Time
}
