package models

import (
	"time"

	"github.com/lib/pq" // pq.StringArray для хранения file_id фотографий
)

// Listing — опубликованное объявление.
type Listing struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	Type   ListingType   `gorm:"type:varchar(30);not null;index" json:"type"`
	Status ListingStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`

	// Район — свободный текст, матчится точным равенством строк.
	District string `gorm:"not null" json:"district"`

	Rooms *int `json:"rooms,omitempty"`

	// Точная цена (для предложений) ИЛИ текстовый диапазон бюджета
	// (для ищущих), например "до 10 000".
	Price      *int   `json:"price,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`

	UtilitiesIncluded bool `gorm:"default:false" json:"utilitiesIncluded"`
	Furniture         bool `gorm:"default:false" json:"furniture"`
	Appliances        bool `gorm:"default:false" json:"appliances"`

	// Кому сдаётся — токены через запятую, например "FEMALE,FAMILY" или "ANY".
	TenantType string `gorm:"type:varchar(100);default:'ANY'" json:"tenantType"`

	SpotsAvailable *int `json:"spotsAvailable,omitempty"`

	// Пол самого ищущего подселение — используется при матчинге.
	MyGender Gender `gorm:"type:varchar(20)" json:"myGender,omitempty"`

	// ROOM — комната целиком, SPOT — место в комнате.
	OfferRoomType string `gorm:"type:varchar(10)" json:"offerRoomType,omitempty"`

	Contact     string `json:"contact"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	PhotoFileIDs pq.StringArray `gorm:"type:text[]" json:"-"`

	// Идентификатор сообщения в канале — внешнее "зеркало" объявления.
	MainChannelMsgID *int `json:"-"`

	ReminderSentAt *time.Time `json:"-"`
	ConfirmedAt    *time.Time `json:"confirmedAt,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
