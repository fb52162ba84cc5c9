package repository

import (
	"github.com/yourusername/nexa-api/internal/domain/entity"
)

// MatchRepository определяет методы чтения журнала результатов матчей.
// Записи создаются внутри транзакции UserRepository.RecordMatchResult.
type MatchRepository interface {
	GetByUser(userID uint, limit, offset int) ([]entity.Match, error)
}
