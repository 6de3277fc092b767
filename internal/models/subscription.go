package models

import "time"

// Subscription — постоянный фильтр интересов: тип объявления плюс
// необязательный район. Пустой район означает "любой".
type Subscription struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	ListingType ListingType `gorm:"type:varchar(30);not null" json:"listingType"`
	District    string      `json:"district,omitempty"`

	MaxBudget *int   `json:"maxBudget,omitempty"`
	Rooms     *int   `json:"rooms,omitempty"`
	Gender    Gender `gorm:"type:varchar(20);default:'ANY'" json:"gender"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
}
