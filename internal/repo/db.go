package repo

import (
	"Pomnim/internal/model"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение к Postgres и накатывает миграции моделей.
// TranslateError включён, чтобы нарушение уникального индекса приходило
// как gorm.ErrDuplicatedKey независимо от драйвера.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Memorial{}, &model.EditorGrant{}); err != nil {
		return nil, err
	}
	return db, nil
}

// IsDuplicateKey сообщает, что запись нарушила уникальный индекс.
// Для аллокации слагов это сигнал «пересчитай кандидата и повтори».
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
