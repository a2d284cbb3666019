package model

import "time"

// User — учётная запись на платформе. Проверку пароля выполняет
// сервисный слой, здесь хранится только bcrypt-хеш.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
