package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	"github.com/yourusername/nexa-api/internal/handler/dto"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
)

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func TestGetProfile_Passthrough(t *testing.T) {
	repo := newFakeUserRepo(&entity.User{ID: 5, Username: "racer", Level: 4, XP: 1500})
	svc, err := NewPlayerService(repo, nil)
	require.NoError(t, err)

	user, err := svc.GetProfile(5)
	require.NoError(t, err)
	assert.Equal(t, "racer", user.Username)

	_, err = svc.GetProfile(99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Порядок: level DESC, затем xp DESC. Игрок 3-го уровня выше любого
// игрока 2-го уровня независимо от количества xp.
func TestGetLeaderboard_OrdersByLevelThenXP(t *testing.T) {
	repo := newFakeUserRepo(
		&entity.User{ID: 1, Username: "alpha", Level: 2, XP: 500},
		&entity.User{ID: 2, Username: "bravo", Level: 3, XP: 100},
		&entity.User{ID: 3, Username: "charlie", Level: 2, XP: 999},
	)
	svc, err := NewPlayerService(repo, nil)
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "bravo", entries[0].Username)
	assert.Equal(t, "charlie", entries[1].Username)
	assert.Equal(t, "alpha", entries[2].Username)
}

func TestGetLeaderboard_ServesCachedSnapshot(t *testing.T) {
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	cacheRepo.On("GetJSON", leaderboardCacheKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(1).(*[]dto.LeaderboardEntry)
		*dest = []dto.LeaderboardEntry{
			{ID: 2, Username: "bravo", Level: 3, XP: 100},
			{ID: 1, Username: "alpha", Level: 2, XP: 500},
		}
	}).Return(nil)

	svc, err := NewPlayerService(userRepo, cacheRepo)
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(1)
	require.NoError(t, err)

	// Снимок обрезается до запрошенного лимита, ranking store не трогаем
	require.Len(t, entries, 1)
	assert.Equal(t, "bravo", entries[0].Username)
	userRepo.AssertNotCalled(t, "GetTopPlayers", mock.Anything)
}

func TestGetLeaderboard_FallsBackOnCacheMiss(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetTopPlayers", 20).Return([]entity.User{
		{ID: 2, Username: "bravo", Level: 3, XP: 100, Currency: 10},
	}, nil)

	cacheRepo := new(MockCacheRepository)
	cacheRepo.On("GetJSON", leaderboardCacheKey, mock.Anything).Return(apperrors.ErrNotFound)

	svc, err := NewPlayerService(userRepo, cacheRepo)
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(20)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].ID)
	assert.Equal(t, 10, entries[0].Currency)

	userRepo.AssertExpectations(t)
}

func TestGetLeaderboard_LargeLimitBypassesCache(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetTopPlayers", 50).Return([]entity.User{}, nil)

	cacheRepo := new(MockCacheRepository)

	svc, err := NewPlayerService(userRepo, cacheRepo)
	require.NoError(t, err)

	// Лимит больше размера снимка - кеш бесполезен, идем в ranking store
	_, err = svc.GetLeaderboard(50)
	require.NoError(t, err)
	cacheRepo.AssertNotCalled(t, "GetJSON", mock.Anything, mock.Anything)
	userRepo.AssertExpectations(t)
}
