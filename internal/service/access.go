package service

import (
	"Pomnim/internal/model"
	"context"
)

// Actor — проверенная личность запрашивающего. Валидацию учётных данных
// выполняет слой аутентификации; сюда приходит уже готовый идентификатор
// либо явный аноним.
type Actor struct {
	ID int64
}

// Anonymous — запрос без установленной личности.
var Anonymous = Actor{}

// IsAnonymous сообщает, что личность не установлена.
func (a Actor) IsAnonymous() bool {
	return a.ID == 0
}

// CapabilityKind — вид запрашиваемого действия.
type CapabilityKind string

const (
	CapabilityRead  CapabilityKind = "read"
	CapabilityWrite CapabilityKind = "write"
)

// Capability — запрошенное действие, для записи — с привязкой к разделу.
// Запись без раздела трактуется как правка базовых полей страницы,
// доступная только владельцу.
type Capability struct {
	Kind    CapabilityKind
	Section model.SectionTag // только для Kind == CapabilityWrite
}

// Read — возможность чтения страницы.
func Read() Capability {
	return Capability{Kind: CapabilityRead}
}

// Write — возможность записи в конкретный раздел.
func Write(section model.SectionTag) Capability {
	return Capability{Kind: CapabilityWrite, Section: section}
}

// WriteCore — правка базовых полей (имя, видимость, удаление).
func WriteCore() Capability {
	return Capability{Kind: CapabilityWrite}
}

// DenyReason — причина отказа.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// Decision — результат проверки доступа.
type Decision struct {
	Allowed bool
	Reason  DenyReason // заполнена только при отказе
}

func allow() Decision           { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// Evaluate — единственная точка решения о доступе. Чистая функция:
// правила применяются по порядку, первое совпадение выигрывает.
//
//  1. публичное чтение разрешено всем;
//  2. всё прочее аноним не может;
//  3. владелец может всё;
//  4. приватное чтение — по списку допущенных;
//  5. запись в раздел — по гранту редактора;
//  6. иначе отказ.
//
// editorSections — разделы, выданные актору на этой странице; их загрузка
// остаётся за вызывающим, чтобы сама функция не ходила в хранилище.
func Evaluate(actor Actor, m *model.Memorial, c Capability, editorSections []model.SectionTag) Decision {
	if c.Kind == CapabilityRead && m.Visibility == model.VisibilityPublic {
		return allow()
	}
	if actor.IsAnonymous() {
		return deny(DenyUnauthenticated)
	}
	if actor.ID == m.OwnerID {
		return allow()
	}
	if c.Kind == CapabilityRead && m.Visibility == model.VisibilityPrivate && m.IsAllowed(actor.ID) {
		return allow()
	}
	if c.Kind == CapabilityWrite && c.Section != "" {
		for _, s := range editorSections {
			if s == c.Section {
				return allow()
			}
		}
	}
	return deny(DenyForbidden)
}

// AccessService — обёртка над Evaluate, подгружающая гранты актора.
// Все мутирующие и читающие пути обязаны проходить через CanAccess,
// самодеятельные проверки видимости в хендлерах запрещены.
type AccessService struct {
	grants GrantReader
}

// GrantReader — минимальная зависимость на хранилище грантов.
type GrantReader interface {
	GetByMemorialAndUser(ctx context.Context, memorialID string, userID int64) (*model.EditorGrant, error)
}

func NewAccessService(grants GrantReader) *AccessService {
	return &AccessService{grants: grants}
}

// CanAccess загружает разделы актора и выносит решение.
func (s *AccessService) CanAccess(ctx context.Context, actor Actor, m *model.Memorial, c Capability) (Decision, error) {
	var sections []model.SectionTag
	// гранты нужны только для записи в раздел не-владельцем
	if c.Kind == CapabilityWrite && c.Section != "" && !actor.IsAnonymous() && actor.ID != m.OwnerID {
		g, err := s.grants.GetByMemorialAndUser(ctx, m.ID, actor.ID)
		if err != nil {
			return Decision{}, err
		}
		if g != nil {
			sections = g.Sections
		}
	}
	return Evaluate(actor, m, c, sections), nil
}

// EditableSections — подсказка для интерфейса: какие разделы актор может
// править. Чисто справочная, авторитетной остаётся CanAccess.
func (s *AccessService) EditableSections(ctx context.Context, actor Actor, m *model.Memorial) ([]model.SectionTag, error) {
	if actor.IsAnonymous() {
		return nil, nil
	}
	if actor.ID == m.OwnerID {
		return model.AllSections(), nil
	}
	g, err := s.grants.GetByMemorialAndUser(ctx, m.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, nil
	}
	return g.Sections, nil
}
