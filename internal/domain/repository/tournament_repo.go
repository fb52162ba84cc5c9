package repository

import (
	"github.com/yourusername/nexa-api/internal/domain/entity"
)

// TournamentRepository определяет методы для работы с турнирами
type TournamentRepository interface {
	Create(tournament *entity.Tournament) error
	// List возвращает все турниры, отсортированные по starts_at DESC
	List() ([]entity.Tournament, error)
}
