package model

import "time"

// Visibility — видимость мемориальной страницы.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid сообщает, входит ли значение в закрытый набор.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// SectionTag — именованный редактируемый раздел страницы.
// Набор закрытый: всё вне его отклоняется на границе API.
type SectionTag string

const (
	SectionBiography SectionTag = "biography"
	SectionGallery   SectionTag = "gallery"
	SectionLocation  SectionTag = "location"
	SectionTimeline  SectionTag = "timeline"
)

// AllSections возвращает полный набор разделов в стабильном порядке.
func AllSections() []SectionTag {
	return []SectionTag{SectionBiography, SectionGallery, SectionLocation, SectionTimeline}
}

// ParseSection валидирует тег раздела, пришедший строкой извне.
func ParseSection(s string) (SectionTag, bool) {
	switch SectionTag(s) {
	case SectionBiography, SectionGallery, SectionLocation, SectionTimeline:
		return SectionTag(s), true
	}
	return "", false
}

// Memorial — серверная модель мемориальной страницы.
// Идентификационные поля (CustomSlug, ShareURL) назначаются один раз при
// создании и далее не меняются; уникальность обеспечивают индексы БД.
type Memorial struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	OwnerID int64  `gorm:"not null;index"` // ссылка на users.id

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	DisplayName string `gorm:"not null"`

	// CustomSlug может отсутствовать: если имя не даёт ни одного
	// допустимого символа, страница живёт только на ShareURL.
	CustomSlug *string `gorm:"uniqueIndex"`
	ShareURL   string  `gorm:"not null;uniqueIndex"`

	Visibility     Visibility            `gorm:"not null;default:public"`
	AllowedUserIDs []int64               `gorm:"serializer:json"` // читатели приватной страницы
	Sections       map[SectionTag]string `gorm:"serializer:json"` // содержимое разделов

	// Счётчик просмотров намеренно неточный: инкремент без блокировок,
	// потери под конкуренцией допустимы.
	ViewCount int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PublicSlug — предпочитаемый публичный идентификатор страницы.
func (m *Memorial) PublicSlug() string {
	if m.CustomSlug != nil && *m.CustomSlug != "" {
		return *m.CustomSlug
	}
	return m.ShareURL
}

// IsAllowed проверяет, входит ли пользователь в список читателей
// приватной страницы. Владелец сюда не входит — он выше любого списка.
func (m *Memorial) IsAllowed(userID int64) bool {
	for _, id := range m.AllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
