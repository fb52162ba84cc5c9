package entity

import "time"

// Match представляет одну запись журнала результатов матчей.
// Журнал append-only: записи используются для истории и аудита
// и не участвуют в пересчете рейтинга после начисления.
type Match struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	Score  int  `gorm:"not null" json:"score"`
	XP     int  `gorm:"column:xp;not null" json:"xp"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Match) TableName() string {
	return "matches"
}
