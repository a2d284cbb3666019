package service

import (
	"Pomnim/internal/model"
	"Pomnim/internal/repo"
	"context"
)

// EditorService — управление грантами редакторов. Выдача и отзыв доступны
// только владельцу; сам реестр прав не проверяет и доверяет этому слою.
type EditorService struct {
	grants   repo.GrantRepository
	identity *IdentityService
}

func NewEditorService(grants repo.GrantRepository, identity *IdentityService) *EditorService {
	return &EditorService{grants: grants, identity: identity}
}

// ownedMemorial разрешает идентификатор и проверяет владение.
func (s *EditorService) ownedMemorial(ctx context.Context, actor Actor, identifier string) (*model.Memorial, error) {
	m, err := s.identity.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if actor.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	if actor.ID != m.OwnerID {
		return nil, ErrNotOwner
	}
	return m, nil
}

// Grant выдаёт пользователю право правки перечисленных разделов.
// Повторная выдача той же паре отклоняется — сначала Revoke.
func (s *EditorService) Grant(ctx context.Context, actor Actor, identifier string, userID int64, sections []string, role string) (*model.EditorGrant, error) {
	m, err := s.ownedMemorial(ctx, actor, identifier)
	if err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		return nil, ErrInvalidSection
	}
	tags := make([]model.SectionTag, 0, len(sections))
	for _, raw := range sections {
		tag, ok := model.ParseSection(raw)
		if !ok {
			return nil, ErrInvalidSection
		}
		tags = append(tags, tag)
	}

	g := &model.EditorGrant{
		MemorialID: m.ID,
		UserID:     userID,
		Sections:   tags,
		Role:       role,
	}
	if err := s.grants.Create(ctx, g); err != nil {
		if repo.IsDuplicateKey(err) {
			return nil, ErrDuplicateGrant
		}
		return nil, err
	}
	return g, nil
}

// Revoke отзывает грант. Идемпотентен: отзыв несуществующего — не ошибка.
func (s *EditorService) Revoke(ctx context.Context, actor Actor, identifier string, userID int64) error {
	m, err := s.ownedMemorial(ctx, actor, identifier)
	if err != nil {
		return err
	}
	return s.grants.Delete(ctx, m.ID, userID)
}

// ListGrants возвращает гранты страницы в порядке выдачи.
func (s *EditorService) ListGrants(ctx context.Context, actor Actor, identifier string) ([]model.EditorGrant, error) {
	m, err := s.ownedMemorial(ctx, actor, identifier)
	if err != nil {
		return nil, err
	}
	return s.grants.ListByMemorial(ctx, m.ID)
}
