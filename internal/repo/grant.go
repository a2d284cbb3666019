package repo

import (
	"Pomnim/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// GrantRepository — контракт доступа к грантам редакторов.
// Проверки прав здесь нет: слой выше обязан авторизовать мутацию
// до обращения к репозиторию.
type GrantRepository interface {
	// Create вставляет грант. Повтор пары (memorial, user) даёт
	// gorm.ErrDuplicatedKey — гранты не сливаются молча.
	Create(ctx context.Context, g *model.EditorGrant) error

	// Delete отзывает грант. Идемпотентно: отзыв несуществующего — не ошибка.
	Delete(ctx context.Context, memorialID string, userID int64) error

	// ListByMemorial возвращает гранты в порядке выдачи.
	ListByMemorial(ctx context.Context, memorialID string) ([]model.EditorGrant, error)

	// GetByMemorialAndUser ищет грант конкретного пользователя;
	// отсутствие — (nil, nil), это штатный случай для проверки доступа.
	GetByMemorialAndUser(ctx context.Context, memorialID string, userID int64) (*model.EditorGrant, error)
}

type grantRepo struct {
	db *gorm.DB
}

// NewGrantRepository создаёт реализацию репозитория для EditorGrant.
func NewGrantRepository(db *gorm.DB) GrantRepository {
	return &grantRepo{db: db}
}

func (r *grantRepo) Create(ctx context.Context, g *model.EditorGrant) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *grantRepo) Delete(ctx context.Context, memorialID string, userID int64) error {
	return r.db.WithContext(ctx).
		Where("memorial_id = ? AND user_id = ?", memorialID, userID).
		Delete(&model.EditorGrant{}).Error
}

func (r *grantRepo) ListByMemorial(ctx context.Context, memorialID string) ([]model.EditorGrant, error) {
	var grants []model.EditorGrant
	err := r.db.WithContext(ctx).
		Where("memorial_id = ?", memorialID).
		Order("id ASC").
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *grantRepo) GetByMemorialAndUser(ctx context.Context, memorialID string, userID int64) (*model.EditorGrant, error) {
	var g model.EditorGrant
	err := r.db.WithContext(ctx).
		First(&g, "memorial_id = ? AND user_id = ?", memorialID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
