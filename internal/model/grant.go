package model

import "time"

// EditorGrant — делегированное владельцем право редактирования.
// Пара (memorial_id, user_id) уникальна: повторная выдача отклоняется,
// а не сливается с существующей.
type EditorGrant struct {
	ID int64 `gorm:"primaryKey"`

	MemorialID string    `gorm:"type:uuid;not null;index:idx_memorial_editor,unique"`
	Memorial   *Memorial `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	UserID int64 `gorm:"not null;index:idx_memorial_editor,unique"`

	Sections []SectionTag `gorm:"serializer:json"` // разрешённые разделы
	Role     string       // подпись для интерфейса, прав не даёт

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// HasSection проверяет, покрывает ли грант указанный раздел.
func (g *EditorGrant) HasSection(tag SectionTag) bool {
	for _, s := range g.Sections {
		if s == tag {
			return true
		}
	}
	return false
}
