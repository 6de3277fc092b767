package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DraftData — открытая карта полей анкеты. Хранится как jsonb; схема
// определяется только текущим шагом диалога.
type DraftData map[string]any

// Value implements driver.Valuer so GORM stores the map as jsonb.
func (d DraftData) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(DraftData{})
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *DraftData) Scan(src any) error {
	if src == nil {
		*d = DraftData{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("draft data: unsupported scan source")
	}
	return json.Unmarshal(raw, d)
}

// String returns the string stored under key, or "" when absent.
func (d DraftData) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Int returns the integer stored under key. JSON numbers round-trip as
// float64, so both representations are accepted.
func (d DraftData) Int(key string) (int, bool) {
	switch v := d[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// Bool returns the boolean stored under key, false when absent.
func (d DraftData) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// StringList returns the list of strings stored under key. A jsonb
// round-trip yields []any, so both shapes are accepted.
func (d DraftData) StringList(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Draft — черновик анкеты, один на пользователя. Создаётся лениво при
// первой записи поля, при публикации очищается (не удаляется).
type Draft struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Data      DraftData `gorm:"type:jsonb"`
	UpdatedAt time.Time
}
