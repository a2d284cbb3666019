package service

import (
	"Pomnim/internal/metrics"
	"Pomnim/internal/model"
	"Pomnim/internal/repo"
	"Pomnim/internal/slug"
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// createRetries — сколько раз пересобрать идентификаторы, если вставка
// упёрлась в уникальный индекс (двое одновременно создают тёзку).
const createRetries = 3

// CreateInput — параметры новой мемориальной страницы.
type CreateInput struct {
	DisplayName    string
	Visibility     model.Visibility
	AllowedUserIDs []int64
}

// MemorialService — поток создания/чтения/правки страницы поверх
// IdentityService и AccessService.
type MemorialService struct {
	memorials repo.MemorialRepository
	identity  *IdentityService
	access    *AccessService
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
}

func NewMemorialService(
	memorials repo.MemorialRepository,
	identity *IdentityService,
	access *AccessService,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *MemorialService {
	return &MemorialService{
		memorials: memorials,
		identity:  identity,
		access:    access,
		metrics:   m,
		logger:    logger,
	}
}

// Create выделяет идентификаторы и вставляет страницу. Аллокация и вставка
// образуют compare-and-retry: кандидат считается без блокировок, финальную
// уникальность держит индекс БД, конфликт означает «посчитай заново».
func (s *MemorialService) Create(ctx context.Context, actor Actor, in CreateInput) (*model.Memorial, error) {
	if actor.IsAnonymous() {
		return nil, ErrUnauthenticated
	}
	if in.Visibility == "" {
		in.Visibility = model.VisibilityPublic
	}
	if !in.Visibility.Valid() {
		return nil, ErrInvalidVisibility
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		seed := strconv.FormatInt(time.Now().UnixNano(), 10)
		ident, err := s.identity.AllocateIdentity(ctx, in.DisplayName, seed)
		if err != nil {
			return nil, err
		}

		m := &model.Memorial{
			ID:             uuid.NewString(),
			OwnerID:        actor.ID,
			DisplayName:    in.DisplayName,
			CustomSlug:     ident.CustomSlug,
			ShareURL:       ident.ShareURL,
			Visibility:     in.Visibility,
			AllowedUserIDs: in.AllowedUserIDs,
		}

		err = s.memorials.Create(ctx, m)
		if err == nil {
			s.metrics.MemorialsCreated.Inc()
			s.logger.Infow("memorial created",
				"id", m.ID, "slug", m.PublicSlug(), "owner", actor.ID)
			return m, nil
		}
		if repo.IsDuplicateKey(err) {
			// проиграли гонку за слаг — пересчитываем и пробуем снова
			s.metrics.SlugRetries.Inc()
			s.logger.Infow("slug conflict on insert, reallocating",
				"display_name", in.DisplayName, "attempt", attempt+1)
			continue
		}
		return nil, err
	}
	return nil, slug.ErrExhausted
}

// Get разрешает идентификатор и проверяет право чтения. Разрешённое чтение
// не-владельцем увеличивает счётчик просмотров; самопросмотр владельца
// публичную статистику не надувает.
func (s *MemorialService) Get(ctx context.Context, actor Actor, identifier string) (*model.Memorial, error) {
	m, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	d, err := s.access.CanAccess(ctx, actor, m, Read())
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		s.metrics.AccessDenied.WithLabelValues(string(d.Reason)).Inc()
		return nil, denyError(d)
	}

	if actor.ID != m.OwnerID {
		// счётчик неточный: потерянный инкремент не повод ронять чтение
		if err := s.memorials.IncrementViewCount(ctx, m.ID); err != nil {
			s.logger.Errorw("view count increment failed", "id", m.ID, "error", err)
		} else {
			s.metrics.ViewsRecorded.Inc()
		}
	}
	return m, nil
}

// UpdateSection записывает содержимое раздела после проверки Write(раздел).
func (s *MemorialService) UpdateSection(ctx context.Context, actor Actor, identifier, section, content string) error {
	tag, ok := model.ParseSection(section)
	if !ok {
		return ErrInvalidSection
	}

	m, err := s.resolve(ctx, identifier)
	if err != nil {
		return err
	}

	d, err := s.access.CanAccess(ctx, actor, m, Write(tag))
	if err != nil {
		return err
	}
	if !d.Allowed {
		s.metrics.AccessDenied.WithLabelValues(string(d.Reason)).Inc()
		return denyError(d)
	}

	return s.memorials.UpdateSection(ctx, m.ID, tag, content)
}

// UpdateVisibility меняет видимость. Базовые поля правит только владелец.
func (s *MemorialService) UpdateVisibility(ctx context.Context, actor Actor, identifier string, v model.Visibility) error {
	if !v.Valid() {
		return ErrInvalidVisibility
	}
	m, err := s.resolve(ctx, identifier)
	if err != nil {
		return err
	}

	d, err := s.access.CanAccess(ctx, actor, m, WriteCore())
	if err != nil {
		return err
	}
	if !d.Allowed {
		s.metrics.AccessDenied.WithLabelValues(string(d.Reason)).Inc()
		return denyError(d)
	}
	return s.memorials.UpdateVisibility(ctx, m.ID, v)
}

// Delete удаляет страницу вместе с грантами. Слаги при этом освобождаются
// (уникальность действует среди живых записей); устаревшие внешние ссылки
// получают 404 до возможного повторного занятия имени.
func (s *MemorialService) Delete(ctx context.Context, actor Actor, identifier string) error {
	m, err := s.resolve(ctx, identifier)
	if err != nil {
		return err
	}

	d, err := s.access.CanAccess(ctx, actor, m, WriteCore())
	if err != nil {
		return err
	}
	if !d.Allowed {
		s.metrics.AccessDenied.WithLabelValues(string(d.Reason)).Inc()
		return denyError(d)
	}

	if err := s.memorials.Delete(ctx, m.ID); err != nil {
		return err
	}
	s.logger.Infow("memorial deleted", "id", m.ID, "owner", actor.ID)
	return nil
}

// EditableSections — справочный список разделов для интерфейса.
func (s *MemorialService) EditableSections(ctx context.Context, actor Actor, identifier string) ([]model.SectionTag, error) {
	m, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.access.EditableSections(ctx, actor, m)
}

// resolve — внутренняя обёртка с учётом метрик попаданий/промахов.
func (s *MemorialService) resolve(ctx context.Context, identifier string) (*model.Memorial, error) {
	m, err := s.identity.Resolve(ctx, identifier)
	if err != nil {
		if err == ErrNotFound {
			s.metrics.ResolveMisses.Inc()
		}
		return nil, err
	}
	s.metrics.ResolveHits.Inc()
	return m, nil
}

// denyError переводит отказ в сигнальную ошибку для вызывающего слоя.
func denyError(d Decision) error {
	if d.Reason == DenyUnauthenticated {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
