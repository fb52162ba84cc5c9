package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/nexa-api/internal/domain/entity"
)

// MatchRepo реализует repository.MatchRepository
type MatchRepo struct {
	db *gorm.DB
}

// NewMatchRepo создает новый репозиторий журнала матчей
func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// GetByUser возвращает записи журнала матчей пользователя, новые первыми
func (r *MatchRepo) GetByUser(userID uint, limit, offset int) ([]entity.Match, error) {
	var matches []entity.Match
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&matches).Error
	return matches, err
}
