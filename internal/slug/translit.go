package slug

import "strings"

// Таблица транслитерации кириллицы. Вход уже приведён к нижнему регистру.
// Буквы без соответствия ниже (и любые другие символы) отбрасываются.
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "e", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Transliterate приводит отображаемое имя к URL-безопасному фрагменту слага:
// нижний регистр, кириллица по таблице, пробелы в дефисы, всё остальное
// отбрасывается, серии дефисов схлопываются. Чистая функция без I/O.
// Пустая строка на выходе — допустимый результат (решение за вызывающим).
func Transliterate(text string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		default:
			if t, ok := cyrillic[r]; ok {
				// окончание «-ия» передаётся как "ia" (Мария → maria),
				// как в паспортной транслитерации
				if r == 'я' && prev == 'и' {
					t = "a"
				}
				b.WriteString(t)
			}
		}
		prev = r
	}
	return collapseHyphens(b.String())
}

// collapseHyphens схлопывает серии дефисов и срезает их по краям.
func collapseHyphens(s string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		if r == '-' {
			lastHyphen = true
			continue
		}
		if lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		lastHyphen = false
		b.WriteRune(r)
	}
	return b.String()
}
