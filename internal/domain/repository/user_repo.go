package repository

import (
	"github.com/yourusername/nexa-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями (ranking store)
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	// RecordMatchResult атомарно применяет результат матча к пользователю:
	// пишет запись в журнал matches, начисляет опыт/валюту и выполняет
	// каскад повышения уровня. Возвращает обновленного пользователя.
	RecordMatchResult(userID uint, score, xpGained int) (*entity.User, error)
	// GetTopPlayers возвращает до limit пользователей, отсортированных
	// по уровню (DESC), затем по опыту (DESC).
	GetTopPlayers(limit int) ([]entity.User, error)
}
