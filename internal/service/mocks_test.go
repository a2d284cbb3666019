package service

import (
	"Pomnim/internal/model"
	"Pomnim/internal/repo"
	"context"

	"github.com/stretchr/testify/mock"
)

// Моки репозиториев для тестов сервисного слоя

type mockMemorialRepo struct{ mock.Mock }

func (m *mockMemorialRepo) Create(ctx context.Context, mem *model.Memorial) error {
	return m.Called(ctx, mem).Error(0)
}
func (m *mockMemorialRepo) GetByID(ctx context.Context, id string) (*model.Memorial, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Memorial); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMemorialRepo) FindByCustomSlug(ctx context.Context, slug string) (*model.Memorial, error) {
	args := m.Called(ctx, slug)
	if v, ok := args.Get(0).(*model.Memorial); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMemorialRepo) FindByShareURL(ctx context.Context, shareURL string) (*model.Memorial, error) {
	args := m.Called(ctx, shareURL)
	if v, ok := args.Get(0).(*model.Memorial); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMemorialRepo) ExistsIdentifier(ctx context.Context, value string) (bool, error) {
	args := m.Called(ctx, value)
	return args.Bool(0), args.Error(1)
}
func (m *mockMemorialRepo) IncrementViewCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockMemorialRepo) UpdateSection(ctx context.Context, id string, tag model.SectionTag, content string) error {
	return m.Called(ctx, id, tag, content).Error(0)
}
func (m *mockMemorialRepo) UpdateVisibility(ctx context.Context, id string, v model.Visibility) error {
	return m.Called(ctx, id, v).Error(0)
}
func (m *mockMemorialRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.MemorialRepository = (*mockMemorialRepo)(nil)

type mockGrantRepo struct{ mock.Mock }

func (m *mockGrantRepo) Create(ctx context.Context, g *model.EditorGrant) error {
	return m.Called(ctx, g).Error(0)
}
func (m *mockGrantRepo) Delete(ctx context.Context, memorialID string, userID int64) error {
	return m.Called(ctx, memorialID, userID).Error(0)
}
func (m *mockGrantRepo) ListByMemorial(ctx context.Context, memorialID string) ([]model.EditorGrant, error) {
	args := m.Called(ctx, memorialID)
	if v, ok := args.Get(0).([]model.EditorGrant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGrantRepo) GetByMemorialAndUser(ctx context.Context, memorialID string, userID int64) (*model.EditorGrant, error) {
	args := m.Called(ctx, memorialID, userID)
	if v, ok := args.Get(0).(*model.EditorGrant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.GrantRepository = (*mockGrantRepo)(nil)
