package service

import (
	"Pomnim/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func publicMemorial(ownerID int64) *model.Memorial {
	return &model.Memorial{ID: "m-1", OwnerID: ownerID, Visibility: model.VisibilityPublic}
}

func privateMemorial(ownerID int64, allowed ...int64) *model.Memorial {
	return &model.Memorial{ID: "m-2", OwnerID: ownerID, Visibility: model.VisibilityPrivate, AllowedUserIDs: allowed}
}

func TestEvaluate_PublicReadForEveryone(t *testing.T) {
	m := publicMemorial(1)

	// публичное чтение открыто и анониму, и любому пользователю
	assert.True(t, Evaluate(Anonymous, m, Read(), nil).Allowed)
	assert.True(t, Evaluate(Actor{ID: 99}, m, Read(), nil).Allowed)
}

func TestEvaluate_AnonymousDeniedBeyondPublicRead(t *testing.T) {
	// приватное чтение и любая запись анониму недоступны
	d := Evaluate(Anonymous, privateMemorial(1), Read(), nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyUnauthenticated, d.Reason)

	d = Evaluate(Anonymous, publicMemorial(1), Write(model.SectionGallery), nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyUnauthenticated, d.Reason)
}

// Верховенство владельца: любой capability, любой раздел, любая видимость —
// всегда разрешено, независимо от грантов и списков допуска.
func TestEvaluate_OwnerSupremacy(t *testing.T) {
	owner := Actor{ID: 1}
	for _, m := range []*model.Memorial{publicMemorial(1), privateMemorial(1)} {
		assert.True(t, Evaluate(owner, m, Read(), nil).Allowed)
		assert.True(t, Evaluate(owner, m, WriteCore(), nil).Allowed)
		for _, s := range model.AllSections() {
			assert.True(t, Evaluate(owner, m, Write(s), nil).Allowed)
		}
	}
}

func TestEvaluate_PrivateReadByAllowedList(t *testing.T) {
	m := privateMemorial(1, 5, 6)

	assert.True(t, Evaluate(Actor{ID: 5}, m, Read(), nil).Allowed)
	assert.True(t, Evaluate(Actor{ID: 6}, m, Read(), nil).Allowed)

	// не в списке, не владелец, не редактор — отказ
	d := Evaluate(Actor{ID: 7}, m, Read(), nil)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyForbidden, d.Reason)
}

// Право читать не вытекает из права редактировать раздел:
// приватное чтение решает только список допуска.
func TestEvaluate_EditorGrantDoesNotImplyPrivateRead(t *testing.T) {
	m := privateMemorial(1)
	d := Evaluate(Actor{ID: 7}, m, Read(), []model.SectionTag{model.SectionGallery})
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyForbidden, d.Reason)
}

func TestEvaluate_SectionScoping(t *testing.T) {
	m := publicMemorial(1)
	editor := Actor{ID: 7}
	granted := []model.SectionTag{model.SectionGallery}

	// единственный грант на gallery: gallery можно, biography нельзя
	assert.True(t, Evaluate(editor, m, Write(model.SectionGallery), granted).Allowed)

	d := Evaluate(editor, m, Write(model.SectionBiography), granted)
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyForbidden, d.Reason)
}

func TestEvaluate_CoreWriteIsOwnerOnly(t *testing.T) {
	m := publicMemorial(1)

	// запись без раздела (базовые поля) не покрывается никаким грантом
	d := Evaluate(Actor{ID: 7}, m, WriteCore(), model.AllSections())
	assert.False(t, d.Allowed)
	assert.Equal(t, DenyForbidden, d.Reason)
}

// --- AccessService поверх хранилища грантов ---

type accessMockGrantReader struct{ mock.Mock }

func (m *accessMockGrantReader) GetByMemorialAndUser(ctx context.Context, memorialID string, userID int64) (*model.EditorGrant, error) {
	args := m.Called(ctx, memorialID, userID)
	if g, ok := args.Get(0).(*model.EditorGrant); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ GrantReader = (*accessMockGrantReader)(nil)

func TestAccessService_CanAccess_LoadsGrantsOnlyWhenNeeded(t *testing.T) {
	ctx := context.Background()
	gr := new(accessMockGrantReader)
	svc := NewAccessService(gr)
	m := publicMemorial(1)

	// чтение и запись владельца решаются без похода за грантами
	d, err := svc.CanAccess(ctx, Actor{ID: 2}, m, Read())
	assert.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = svc.CanAccess(ctx, Actor{ID: 1}, m, Write(model.SectionGallery))
	assert.NoError(t, err)
	assert.True(t, d.Allowed)
	gr.AssertNotCalled(t, "GetByMemorialAndUser", mock.Anything, mock.Anything, mock.Anything)

	// запись не-владельцем — гранты нужны
	gr.On("GetByMemorialAndUser", mock.Anything, "m-1", int64(7)).
		Return(&model.EditorGrant{MemorialID: "m-1", UserID: 7, Sections: []model.SectionTag{model.SectionLocation}}, nil).Twice()

	d, err = svc.CanAccess(ctx, Actor{ID: 7}, m, Write(model.SectionLocation))
	assert.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = svc.CanAccess(ctx, Actor{ID: 7}, m, Write(model.SectionGallery))
	assert.NoError(t, err)
	assert.False(t, d.Allowed)
	gr.AssertExpectations(t)
}

func TestAccessService_EditableSections(t *testing.T) {
	ctx := context.Background()
	gr := new(accessMockGrantReader)
	svc := NewAccessService(gr)
	m := publicMemorial(1)

	// аноним — пусто
	sections, err := svc.EditableSections(ctx, Anonymous, m)
	assert.NoError(t, err)
	assert.Empty(t, sections)

	// владелец — все разделы
	sections, err = svc.EditableSections(ctx, Actor{ID: 1}, m)
	assert.NoError(t, err)
	assert.Equal(t, model.AllSections(), sections)

	// редактор — его гранты
	gr.On("GetByMemorialAndUser", mock.Anything, "m-1", int64(7)).
		Return(&model.EditorGrant{Sections: []model.SectionTag{model.SectionTimeline}}, nil).Once()
	sections, err = svc.EditableSections(ctx, Actor{ID: 7}, m)
	assert.NoError(t, err)
	assert.Equal(t, []model.SectionTag{model.SectionTimeline}, sections)

	// посторонний — пусто
	gr.On("GetByMemorialAndUser", mock.Anything, "m-1", int64(8)).
		Return((*model.EditorGrant)(nil), nil).Once()
	sections, err = svc.EditableSections(ctx, Actor{ID: 8}, m)
	assert.NoError(t, err)
	assert.Empty(t, sections)
	gr.AssertExpectations(t)
}
