package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LevelCost — базовая стоимость уровня: для перехода с уровня L на L+1
// требуется L * LevelCost накопленного опыта.
const LevelCost = 1000

// User представляет игрока в системе
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:100;not null" json:"-"`
	Level    int    `gorm:"not null;default:1;index:idx_users_ranking" json:"level"`
	XP       int    `gorm:"column:xp;not null;default:0;index:idx_users_ranking" json:"xp"`
	Currency int    `gorm:"not null;default:0" json:"currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для username=%s: %v", u.Username, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// ApplyMatchReward зачисляет награду за матч и выполняет каскад повышения уровня.
// Валюта начисляется как score/10 (целочисленно), опыт добавляется целиком,
// после чего избыток конвертируется в уровни: пока xp >= level*LevelCost,
// вычитаем level*LevelCost и повышаем уровень. Одно большое начисление может
// поднять несколько уровней за раз. Цикл завершается, т.к. стоимость уровня
// строго растет, а xp на каждой итерации уменьшается.
func (u *User) ApplyMatchReward(score, xpGained int) {
	u.XP += xpGained
	u.Currency += score / 10
	for u.XP >= u.Level*LevelCost {
		u.XP -= u.Level * LevelCost
		u.Level++
	}
}
