package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
	"github.com/yourusername/nexa-api/internal/service"
)

func newPlayerHandler(t *testing.T, userRepo *MockUserRepository, matchRepo *MockMatchRepository) *PlayerHandler {
	t.Helper()
	playerService, err := service.NewPlayerService(userRepo, nil)
	require.NoError(t, err)
	matchService, err := service.NewMatchService(userRepo, matchRepo, nil, nil)
	require.NoError(t, err)
	return NewPlayerHandler(playerService, matchService)
}

// ============================================================================
// GET /api/profile/:id
// ============================================================================

func TestGetProfile_Success(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(5)).Return(&entity.User{
		ID:        5,
		Username:  "racer",
		Level:     4,
		XP:        1500,
		Currency:  230,
		CreatedAt: createdAt,
	}, nil)

	handler := newPlayerHandler(t, userRepo, new(MockMatchRepository))
	c, w := newTestGinContext(http.MethodGet, "/api/profile/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	handler.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, float64(5), resp["id"])
	assert.Equal(t, "racer", resp["username"])
	assert.Equal(t, float64(4), resp["level"])
	assert.Equal(t, float64(1500), resp["xp"])
	assert.Equal(t, float64(230), resp["currency"])
	assert.NotContains(t, resp, "password")
}

func TestGetProfile_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	handler := newPlayerHandler(t, userRepo, new(MockMatchRepository))

	tests := []struct {
		name string
		id   string
	}{
		{"unknown id", "99"},
		{"non-numeric id", "abc"},
		{"negative id", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodGet, "/api/profile/"+tc.id, nil)
			c.Params = gin.Params{{Key: "id", Value: tc.id}}
			handler.GetProfile(c)

			assert.Equal(t, http.StatusNotFound, w.Code)
			resp := parseJSONResponse(t, w)
			assert.Equal(t, "Player not found", resp["error"])
		})
	}
}

// ============================================================================
// GET /api/profile/:id/matches
// ============================================================================

func TestGetMatchHistory_Success(t *testing.T) {
	matches := []entity.Match{
		{ID: 2, UserID: 5, Score: 1200, XP: 500},
		{ID: 1, UserID: 5, Score: 700, XP: 300},
	}
	matchRepo := new(MockMatchRepository)
	matchRepo.On("GetByUser", uint(5), 20, 0).Return(matches, nil)

	handler := newPlayerHandler(t, new(MockUserRepository), matchRepo)
	c, w := newTestGinContext(http.MethodGet, "/api/profile/5/matches", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	handler.GetMatchHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []entity.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, 1200, resp[0].Score)
	matchRepo.AssertExpectations(t)
}

// ============================================================================
// GET /api/leaderboard
// ============================================================================

func TestGetLeaderboard_DefaultLimit(t *testing.T) {
	top := []entity.User{
		{ID: 2, Username: "drifter", Level: 5, XP: 100, Currency: 900},
		{ID: 1, Username: "racer", Level: 4, XP: 1500, Currency: 230},
	}
	userRepo := new(MockUserRepository)
	userRepo.On("GetTopPlayers", 20).Return(top, nil)

	handler := newPlayerHandler(t, userRepo, new(MockMatchRepository))
	c, w := newTestGinContext(http.MethodGet, "/api/leaderboard", nil)
	handler.GetLeaderboard(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "drifter", entries[0]["username"])
	assert.Equal(t, float64(5), entries[0]["level"])
	// В проекции лидерборда только публичные поля прогрессии
	assert.NotContains(t, entries[0], "password")
	assert.NotContains(t, entries[0], "created_at")

	userRepo.AssertExpectations(t)
}

func TestGetLeaderboard_CustomLimit(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetTopPlayers", 5).Return([]entity.User{}, nil)

	handler := newPlayerHandler(t, userRepo, new(MockMatchRepository))
	c, w := newTestGinContext(http.MethodGet, "/api/leaderboard?limit=5", nil)
	handler.GetLeaderboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	userRepo.AssertExpectations(t)
}
