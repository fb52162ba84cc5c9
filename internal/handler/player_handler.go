package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
	"github.com/yourusername/nexa-api/internal/service"
)

// PlayerHandler обрабатывает запросы профилей и лидерборда
type PlayerHandler struct {
	playerService *service.PlayerService
	matchService  *service.MatchService
}

// NewPlayerHandler создает новый обработчик игроков
func NewPlayerHandler(playerService *service.PlayerService, matchService *service.MatchService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		matchService:  matchService,
	}
}

// GetProfile обрабатывает запрос на получение публичного профиля игрока
func (h *PlayerHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// Некорректный ID неотличим от отсутствующего игрока
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}

	user, err := h.playerService.GetProfile(uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		log.Printf("[PlayerHandler] Ошибка получения профиля %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"level":      user.Level,
		"xp":         user.XP,
		"currency":   user.Currency,
		"created_at": user.CreatedAt,
	})
}

// GetMatchHistory обрабатывает запрос журнала матчей игрока
func (h *PlayerHandler) GetMatchHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	matches, err := h.matchService.GetMatchHistory(uint(id), limit, offset)
	if err != nil {
		log.Printf("[PlayerHandler] Ошибка получения истории матчей %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetLeaderboard обрабатывает запрос на получение лидерборда
func (h *PlayerHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	entries, err := h.playerService.GetLeaderboard(limit)
	if err != nil {
		log.Printf("[PlayerHandler] Ошибка получения лидерборда: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error getting leaderboard"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
