package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	"github.com/yourusername/nexa-api/internal/domain/repository"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
)

// CreateTournamentInput содержит данные для создания турнира
type CreateTournamentInput struct {
	Name     string
	StartsAt time.Time
	EndsAt   *time.Time
	EntryFee int
	Data     json.RawMessage
}

// TournamentService предоставляет методы для работы с турнирами
type TournamentService struct {
	tournamentRepo repository.TournamentRepository
}

// NewTournamentService создает новый сервис турниров
func NewTournamentService(tournamentRepo repository.TournamentRepository) (*TournamentService, error) {
	if tournamentRepo == nil {
		return nil, fmt.Errorf("TournamentRepository is required for TournamentService")
	}
	return &TournamentService{tournamentRepo: tournamentRepo}, nil
}

// List возвращает все турниры, новые первыми
func (s *TournamentService) List() ([]entity.Tournament, error) {
	return s.tournamentRepo.List()
}

// Create валидирует и создает турнир
func (s *TournamentService) Create(input CreateTournamentInput) (*entity.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" || input.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: name and starts_at are required", apperrors.ErrValidation)
	}
	if input.EntryFee < 0 {
		return nil, fmt.Errorf("%w: entry_fee must be non-negative", apperrors.ErrValidation)
	}

	data := input.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	tournament := &entity.Tournament{
		Name:     strings.TrimSpace(input.Name),
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		EntryFee: input.EntryFee,
		Data:     data,
	}
	if err := s.tournamentRepo.Create(tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}
