package models

import "time"

// User представляет пользователя бота. Создаётся при первом контакте,
// никогда не удаляется.
type User struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	TelegramID int64 `gorm:"uniqueIndex;not null" json:"telegramId"`
	Username   string
	FirstName  string
	Phone      string

	// Текущий шаг диалоговой анкеты.
	State UserState `gorm:"type:varchar(40);not null;default:'IDLE'"`

	Banned               bool `gorm:"default:false"`
	BannedUntil          *time.Time
	NotificationsEnabled bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBanned reports whether the user is restricted right now: either an
// explicit permanent ban or a temporary restriction that has not expired.
func (u *User) IsBanned() bool {
	if u.Banned {
		return true
	}
	return u.BannedUntil != nil && u.BannedUntil.After(time.Now())
}
