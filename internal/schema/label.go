package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// правки после title-case для доменных аббревиатур
var labelOverrides = []struct {
	from, to string
}{
	{"Kpc 2 Warna", "KPC 2 Warna"},
}

// Label превращает ENUM_CASE в "Enum Case".
func Label(symbol string) string {
	// cases.Caser хранит состояние, поэтому новый на каждый вызов
	s := cases.Title(language.Und).String(strings.ReplaceAll(symbol, "_", " "))
	for _, o := range labelOverrides {
		s = strings.ReplaceAll(s, o.from, o.to)
	}
	return s
}
