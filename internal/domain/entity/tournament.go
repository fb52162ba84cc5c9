package entity

import (
	"encoding/json"
	"time"
)

// Tournament представляет турнир
type Tournament struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Name     string          `gorm:"size:100;not null" json:"name"`
	StartsAt time.Time       `gorm:"not null;index" json:"starts_at"`
	EndsAt   *time.Time      `json:"ends_at"`
	EntryFee int             `gorm:"not null;default:0" json:"entry_fee"`
	Data     json.RawMessage `gorm:"type:jsonb" json:"data"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Tournament) TableName() string {
	return "tournaments"
}
