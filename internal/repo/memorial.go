package repo

import (
	"Pomnim/internal/model"
	"context"

	"gorm.io/gorm"
)

// MemorialRepository — контракт доступа к мемориальным страницам для слоя сервиса.
type MemorialRepository interface {
	// Create вставляет страницу целиком, включая идентификационные поля.
	// Гонку одинаковых слагов ловит уникальный индекс: вызывающий обязан
	// проверить ошибку через IsDuplicateKey и повторить аллокацию.
	Create(ctx context.Context, m *model.Memorial) error

	// GetByID ищет по внутреннему идентификатору.
	GetByID(ctx context.Context, id string) (*model.Memorial, error)

	// FindByCustomSlug и FindByShareURL ищут по публичным идентификаторам.
	// Промах — gorm.ErrRecordNotFound, без логирования: это штатный исход.
	FindByCustomSlug(ctx context.Context, slug string) (*model.Memorial, error)
	FindByShareURL(ctx context.Context, shareURL string) (*model.Memorial, error)

	// ExistsIdentifier проверяет занятость значения сразу во всех трёх
	// пространствах имён (custom_slug, share_url, id) — этим аллокатор
	// исключает межпространственные коллизии.
	ExistsIdentifier(ctx context.Context, value string) (bool, error)

	// IncrementViewCount — неточный счётчик: одиночный UPDATE без блокировок,
	// потери под конкуренцией допустимы. updated_at не трогает.
	IncrementViewCount(ctx context.Context, id string) error

	// UpdateSection заменяет содержимое одного раздела.
	UpdateSection(ctx context.Context, id string, tag model.SectionTag, content string) error

	// UpdateVisibility переключает видимость страницы.
	UpdateVisibility(ctx context.Context, id string, v model.Visibility) error

	// Delete удаляет страницу. Слаги при этом освобождаются: уникальность
	// действует только среди живых записей.
	Delete(ctx context.Context, id string) error
}

type memorialRepo struct {
	db *gorm.DB
}

// NewMemorialRepository создаёт реализацию репозитория для Memorial.
func NewMemorialRepository(db *gorm.DB) MemorialRepository {
	return &memorialRepo{db: db}
}

func (r *memorialRepo) Create(ctx context.Context, m *model.Memorial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memorialRepo) GetByID(ctx context.Context, id string) (*model.Memorial, error) {
	var m model.Memorial
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memorialRepo) FindByCustomSlug(ctx context.Context, slug string) (*model.Memorial, error) {
	var m model.Memorial
	if err := r.db.WithContext(ctx).First(&m, "custom_slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memorialRepo) FindByShareURL(ctx context.Context, shareURL string) (*model.Memorial, error) {
	var m model.Memorial
	if err := r.db.WithContext(ctx).First(&m, "share_url = ?", shareURL).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memorialRepo) ExistsIdentifier(ctx context.Context, value string) (bool, error) {
	var n int64
	// id приводится к тексту: произвольная строка не обязана быть uuid
	err := r.db.WithContext(ctx).Model(&model.Memorial{}).
		Where("custom_slug = ? OR share_url = ? OR CAST(id AS TEXT) = ?", value, value, value).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *memorialRepo) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Memorial{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *memorialRepo) UpdateSection(ctx context.Context, id string, tag model.SectionTag, content string) error {
	// read-modify-write внутри транзакции: разделы лежат одним json-полем
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Memorial
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return err
		}
		if m.Sections == nil {
			m.Sections = make(map[model.SectionTag]string)
		}
		m.Sections[tag] = content
		return tx.Save(&m).Error
	})
}

func (r *memorialRepo) UpdateVisibility(ctx context.Context, id string, v model.Visibility) error {
	return r.db.WithContext(ctx).Model(&model.Memorial{}).
		Where("id = ?", id).
		Update("visibility", v).Error
}

func (r *memorialRepo) Delete(ctx context.Context, id string) error {
	// гранты редакторов уходят вместе со страницей
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("memorial_id = ?", id).Delete(&model.EditorGrant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Memorial{}, "id = ?", id).Error
	})
}
