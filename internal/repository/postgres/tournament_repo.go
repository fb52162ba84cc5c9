package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/nexa-api/internal/domain/entity"
)

// TournamentRepo реализует repository.TournamentRepository
type TournamentRepo struct {
	db *gorm.DB
}

// NewTournamentRepo создает новый репозиторий турниров
func NewTournamentRepo(db *gorm.DB) *TournamentRepo {
	return &TournamentRepo{db: db}
}

// Create создает новый турнир
func (r *TournamentRepo) Create(tournament *entity.Tournament) error {
	return r.db.Create(tournament).Error
}

// List возвращает все турниры, отсортированные по дате начала (новые первыми)
func (r *TournamentRepo) List() ([]entity.Tournament, error) {
	var tournaments []entity.Tournament
	err := r.db.Order("starts_at DESC").Find(&tournaments).Error
	return tournaments, err
}
