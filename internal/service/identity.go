package service

import (
	"Pomnim/internal/model"
	"Pomnim/internal/repo"
	"Pomnim/internal/slug"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity — публичные идентификаторы новой страницы.
// CustomSlug может отсутствовать: имя не дало ни одного допустимого
// символа, и страница доступна только по ShareURL.
type Identity struct {
	CustomSlug *string
	ShareURL   string
}

// IdentityService выделяет публичные идентификаторы и разрешает входящие.
// Аллокация — явный шаг потока создания, а не скрытый хук сохранения:
// так гонка за слаг видна и проверяется отдельно.
type IdentityService struct {
	memorials repo.MemorialRepository
	alloc     *slug.Allocator
}

func NewIdentityService(memorials repo.MemorialRepository, alloc *slug.Allocator) *IdentityService {
	return &IdentityService{memorials: memorials, alloc: alloc}
}

// exists проверяет кандидата сразу по всем трём пространствам имён,
// чтобы свежий слаг не совпал с чужим share_url или внутренним id.
func (s *IdentityService) exists(ctx context.Context, candidate string) (bool, error) {
	return s.memorials.ExistsIdentifier(ctx, candidate)
}

// AllocateIdentity вычисляет пару идентификаторов для новой страницы.
// Вызывается ровно один раз на создание; при нарушении уникального
// индекса на вставке создатель обязан вызвать её заново.
func (s *IdentityService) AllocateIdentity(ctx context.Context, displayName, fallbackSeed string) (Identity, error) {
	custom, err := s.alloc.Allocate(ctx, displayName, s.exists)
	if err != nil {
		return Identity{}, err
	}

	// share_url — вырожденный случай того же аллокатора: база усилена
	// seed-ом создания и на практике не коллидирует, но проверяется
	// так же, чтобы инвариант уникальности не зависел от удачи
	shareBase := slug.Transliterate(displayName + " " + fallbackSeed)
	if shareBase == "" {
		shareBase = "m-" + uuid.NewString()
	}
	share, err := s.alloc.Probe(ctx, shareBase, s.exists)
	if err != nil {
		return Identity{}, err
	}

	ident := Identity{ShareURL: share}
	if custom != "" {
		ident.CustomSlug = &custom
	}
	return ident, nil
}

// Resolve превращает входящий публичный идентификатор в страницу.
// Порядок фиксирован: custom_slug затеняет совпавший share_url, затем
// пробуется внутренний id. Промах — ErrNotFound, без лишнего шума.
// Проверок доступа здесь нет: результат обязан пройти через CanAccess.
func (s *IdentityService) Resolve(ctx context.Context, identifier string) (*model.Memorial, error) {
	if identifier == "" {
		return nil, ErrNotFound
	}

	m, err := s.memorials.FindByCustomSlug(ctx, identifier)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m, err = s.memorials.FindByShareURL(ctx, identifier)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// по id ищем только если строка вообще похожа на uuid:
	// Postgres не сравнит uuid-колонку с произвольным текстом
	if uuid.Validate(identifier) == nil {
		m, err = s.memorials.GetByID(ctx, identifier)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, ErrNotFound
}
