package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	"github.com/yourusername/nexa-api/internal/domain/repository"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
	"github.com/yourusername/nexa-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// RegisterUser регистрирует нового пользователя и выпускает токен.
// Новый пользователь создается с level=1, xp=0, currency=0.
func (s *AuthService) RegisterUser(username, password string) (*entity.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	// Проверяем, свободно ли имя. Гонку между проверкой и созданием
	// закрывает уникальный индекс: Create вернет ErrUsernameTaken.
	_, err := s.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", apperrors.ErrUsernameTaken
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check username existence: %w", err)
	}

	user := &entity.User{
		Username: username,
		Password: password, // хешируется в BeforeSave
		Level:    1,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token after registration: %w", err)
	}

	log.Printf("[AuthService] Пользователь ID=%d (%s) успешно зарегистрирован", user.ID, user.Username)
	return user, token, nil
}

// LoginUser проверяет учетные данные и выпускает токен.
// Отсутствие пользователя и неверный пароль намеренно неразличимы.
func (s *AuthService) LoginUser(username, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token after login: %w", err)
	}

	return user, token, nil
}
