package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
	"github.com/yourusername/nexa-api/internal/service"
)

// TournamentHandler обрабатывает запросы, связанные с турнирами
type TournamentHandler struct {
	tournamentService *service.TournamentService
}

// NewTournamentHandler создает новый обработчик турниров
func NewTournamentHandler(tournamentService *service.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// CreateTournamentRequest представляет запрос на создание турнира
type CreateTournamentRequest struct {
	Name     string          `json:"name" binding:"required"`
	StartsAt time.Time       `json:"starts_at" binding:"required"`
	EndsAt   *time.Time      `json:"ends_at"`
	EntryFee int             `json:"entry_fee"`
	Data     json.RawMessage `json:"data"`
}

// List обрабатывает запрос на получение списка турниров
func (h *TournamentHandler) List(c *gin.Context) {
	tournaments, err := h.tournamentService.List()
	if err != nil {
		log.Printf("[TournamentHandler] Ошибка получения списка турниров: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// Create обрабатывает запрос на создание турнира
func (h *TournamentHandler) Create(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
		return
	}

	_, err := h.tournamentService.Create(service.CreateTournamentInput{
		Name:     req.Name,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		EntryFee: req.EntryFee,
		Data:     req.Data,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}
		log.Printf("[TournamentHandler] Ошибка создания турнира: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true})
}
