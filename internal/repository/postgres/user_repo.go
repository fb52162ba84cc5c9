package postgres

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/nexa-api/internal/domain/entity"
	apperrors "github.com/yourusername/nexa-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		// Уникальность username обеспечивается индексом; конфликт
		// переводим в доменную ошибку (требует TranslateError у gorm).
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени пользователя
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RecordMatchResult атомарно применяет результат матча к пользователю.
// Последовательность чтение-каскад-запись выполняется в одной транзакции
// с блокировкой строки пользователя (SELECT ... FOR UPDATE): параллельные
// начисления одному пользователю сериализуются на уровне БД, иначе
// конкурирующий read-modify-write молча теряет опыт или валюту.
func (r *UserRepo) RecordMatchResult(userID uint, score, xpGained int) (*entity.User, error) {
	var user entity.User

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		// Журнал результатов: сырой результат пишется до начисления
		match := entity.Match{
			UserID: userID,
			Score:  score,
			XP:     xpGained,
		}
		if err := tx.Create(&match).Error; err != nil {
			return err
		}

		user.ApplyMatchReward(score, xpGained)

		return tx.Model(&entity.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"xp":       user.XP,
				"level":    user.Level,
				"currency": user.Currency,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetTopPlayers возвращает до limit пользователей, отсортированных по
// уровню и опыту. ID добавлен в сортировку для стабильного порядка при
// полном равенстве.
func (r *UserRepo) GetTopPlayers(limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.
		Select("id", "username", "level", "xp", "currency").
		Order("level DESC, xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
