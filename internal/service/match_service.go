package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	"github.com/yourusername/nexa-api/internal/domain/repository"
	"github.com/yourusername/nexa-api/internal/handler/dto"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
	"github.com/yourusername/nexa-api/internal/websocket"
)

const (
	// leaderboardCacheKey — ключ снимка топа игроков в Redis
	leaderboardCacheKey = "leaderboard:top"

	// leaderboardCacheTTL — страховочный TTL снимка; при каждом
	// принятом результате снимок перезаписывается целиком
	leaderboardCacheTTL = 10 * time.Minute

	// leaderboardSize — размер рассылаемой проекции лидерборда
	leaderboardSize = 20
)

// MatchService принимает результаты матчей, применяет их к ranking store
// и рассылает группе arena обновленную проекцию лидерборда.
type MatchService struct {
	userRepo  repository.UserRepository
	matchRepo repository.MatchRepository
	cacheRepo repository.CacheRepository
	wsManager *websocket.Manager
}

// NewMatchService создает новый сервис результатов матчей
func NewMatchService(
	userRepo repository.UserRepository,
	matchRepo repository.MatchRepository,
	cacheRepo repository.CacheRepository,
	wsManager *websocket.Manager,
) (*MatchService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for MatchService")
	}
	if matchRepo == nil {
		return nil, fmt.Errorf("MatchRepository is required for MatchService")
	}
	return &MatchService{
		userRepo:  userRepo,
		matchRepo: matchRepo,
		cacheRepo: cacheRepo,
		wsManager: wsManager,
	}, nil
}

// SubmitResult валидирует и применяет результат матча, затем пересчитывает
// и рассылает лидерборд. Ошибка рассылки не откатывает начисление:
// доставка best-effort, следующий результат принесет полный снимок.
func (s *MatchService) SubmitResult(userID uint, score, xpGained int) (*entity.User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: userId must be a positive integer", apperrors.ErrValidation)
	}
	if score < 0 || xpGained < 0 {
		return nil, fmt.Errorf("%w: score and xp must be non-negative", apperrors.ErrValidation)
	}

	user, err := s.userRepo.RecordMatchResult(userID, score, xpGained)
	if err != nil {
		return nil, err
	}

	log.Printf("[MatchService] Результат принят: user=%d score=%d xp=%d -> level=%d xp=%d currency=%d",
		userID, score, xpGained, user.Level, user.XP, user.Currency)

	if err := s.BroadcastLeaderboard(); err != nil {
		log.Printf("[MatchService] Ошибка рассылки лидерборда: %v", err)
	}

	return user, nil
}

// BroadcastLeaderboard пересчитывает топ игроков, обновляет снимок в кеше
// и рассылает его группе arena.
func (s *MatchService) BroadcastLeaderboard() error {
	entries, err := s.buildLeaderboard()
	if err != nil {
		return err
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(leaderboardCacheKey, entries, leaderboardCacheTTL); err != nil {
			// Кеш вторичен: REST-чтение упадет обратно на БД
			log.Printf("[MatchService] Ошибка обновления снимка лидерборда в кеше: %v", err)
		}
	}

	if s.wsManager == nil {
		return nil
	}
	return s.wsManager.BroadcastEventToArena(websocket.LEADERBOARD_UPDATE, entries)
}

// GetMatchHistory возвращает журнал матчей пользователя
func (s *MatchService) GetMatchHistory(userID uint, limit, offset int) ([]entity.Match, error) {
	if limit < 1 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.matchRepo.GetByUser(userID, limit, offset)
}

func (s *MatchService) buildLeaderboard() ([]dto.LeaderboardEntry, error) {
	users, err := s.userRepo.GetTopPlayers(leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
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
