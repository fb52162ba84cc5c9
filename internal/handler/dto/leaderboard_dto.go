package dto

// LeaderboardEntry представляет одну строку проекции лидерборда.
// Проекция производная: пересчитывается целиком из ranking store
// и отдельно не хранится.
type LeaderboardEntry struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Currency int    `json:"currency"`
}
