package slug

import (
	"context"
	"errors"
	"fmt"
)

// ErrExhausted — исчерпан бюджет подбора суффиксов. Редкая и фатальная
// для запроса создания ситуация, наружу отдаётся как есть.
var ErrExhausted = errors.New("slug: suffix budget exhausted")

// DefaultRetryLimit — бюджет подбора по умолчанию.
const DefaultRetryLimit = 1000

// ExistsFunc проверяет занятость кандидата в авторитетном хранилище.
// Проверка должна покрывать все пространства имён публичных идентификаторов
// (custom_slug, share_url, id), иначе возможна межпространственная коллизия.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Allocator подбирает глобально уникальный публичный идентификатор.
// Вычисление кандидата свободно от блокировок; окончательную уникальность
// гарантирует уникальный индекс БД, а вызывающий обязан повторить
// аллокацию при нарушении индекса (гонка создателей с одинаковым именем).
type Allocator struct {
	limit int
}

// NewAllocator создаёт аллокатор с заданным бюджетом подбора.
// Нулевой или отрицательный бюджет заменяется на DefaultRetryLimit.
func NewAllocator(limit int) *Allocator {
	if limit <= 0 {
		limit = DefaultRetryLimit
	}
	return &Allocator{limit: limit}
}

// Allocate строит базу из отображаемого имени и подбирает свободный слаг.
// Пустая база — не ошибка: возвращается ("", nil), и вызывающий уходит
// на фоллбек (share_url либо синтетический идентификатор).
func (a *Allocator) Allocate(ctx context.Context, displayName string, exists ExistsFunc) (string, error) {
	base := Transliterate(displayName)
	if base == "" {
		return "", nil
	}
	return a.Probe(ctx, base, exists)
}

// Probe перебирает base, base-1, base-2, … до первого свободного значения.
func (a *Allocator) Probe(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	for i := 0; i <= a.limit; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}
