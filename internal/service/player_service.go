package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	"github.com/yourusername/nexa-api/internal/domain/repository"
	"github.com/yourusername/nexa-api/internal/handler/dto"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
)

// PlayerService предоставляет чтение профилей и лидерборда
type PlayerService struct {
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
}

// NewPlayerService создает новый сервис игроков
func NewPlayerService(userRepo repository.UserRepository, cacheRepo repository.CacheRepository) (*PlayerService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for PlayerService")
	}
	return &PlayerService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
	}, nil
}

// GetProfile возвращает публичный профиль игрока
func (s *PlayerService) GetProfile(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// GetLeaderboard возвращает топ игроков. Сначала пробует снимок из кеша,
// при промахе или ошибке пересчитывает из ranking store.
func (s *PlayerService) GetLeaderboard(limit int) ([]dto.LeaderboardEntry, error) {
	if limit < 1 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}

	if s.cacheRepo != nil && limit <= leaderboardSize {
		var cached []dto.LeaderboardEntry
		err := s.cacheRepo.GetJSON(leaderboardCacheKey, &cached)
		if err == nil {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[PlayerService] Ошибка чтения снимка лидерборда из кеша: %v", err)
		}
	}

	users, err := s.userRepo.GetTopPlayers(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = dto.LeaderboardEntry{
			ID:       user.ID,
			Username: user.Username,
			Level:    user.Level,
			XP:       user.XP,
			Currency: user.Currency,
		}
	}
	return entries, nil
}
