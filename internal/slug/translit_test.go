package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransliterate_Cyrillic(t *testing.T) {
	// базовые случаи из продуктовых требований
	assert.Equal(t, "ivan-petrov", Transliterate("Иван Петров"))
	assert.Equal(t, "maria-sidorova", Transliterate("Мария Сидорова"))
	assert.Equal(t, "aleksey-shchukin", Transliterate("Алексей Щукин"))
}

func TestTransliterate_Latin(t *testing.T) {
	assert.Equal(t, "john-smith", Transliterate("John Smith"))
	assert.Equal(t, "anna-maria-2", Transliterate("Anna-Maria 2"))
}

func TestTransliterate_StripsAndCollapses(t *testing.T) {
	// символы вне [a-z0-9-] отбрасываются, серии дефисов схлопываются
	assert.Equal(t, "anne-marie", Transliterate("Anne  Marie!!"))
	assert.Equal(t, "jos-garca", Transliterate("José García")) // диакритика режется, не конвертируется
	assert.Equal(t, "a-b", Transliterate("--a---b--"))
	assert.Equal(t, "1", Transliterate("Ö1€"))
}

func TestTransliterate_EmptyResult(t *testing.T) {
	// пустой результат — валидный выход, фоллбек решает вызывающий
	assert.Equal(t, "", Transliterate(""))
	assert.Equal(t, "", Transliterate("!!!"))
	assert.Equal(t, "", Transliterate("   "))
	assert.Equal(t, "", Transliterate("漢字"))
}

func TestTransliterate_Deterministic(t *testing.T) {
	in := "Пётр Ильич Чайковский"
	first := Transliterate(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Transliterate(in))
	}
}
