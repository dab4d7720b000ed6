package schema

import (
	"os"
	"regexp"
	"strings"
)

var enumBlockRe = regexp.MustCompile(`enum\s+(\w+)\s*\{([^}]*)\}`)

const commentPrefix = "//"

// ParseEnums вытаскивает все блоки `enum Name { ... }` из текста схемы.
// Из каждой строки берётся первый токен; пустые строки и комментарии пропускаются.
// Enum без значений в каталог не попадает.
func ParseEnums(text string) *Catalog {
	cat := NewCatalog()
	for _, m := range enumBlockRe.FindAllStringSubmatch(text, -1) {
		name, body := m[1], m[2]
		var symbols []string
		for _, raw := range strings.Split(body, "\n") {
			line := strings.TrimSpace(raw)
			if line == "" || strings.HasPrefix(line, commentPrefix) {
				continue
			}
			// срезать inline-комментарий
			if i := strings.Index(line, commentPrefix); i >= 0 {
				line = line[:i]
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			symbols = append(symbols, fields[0])
		}
		if len(symbols) > 0 {
			cat.put(name, symbols)
		}
	}
	return cat
}

// LoadFile читает schema.prisma и парсит enum'ы.
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return ParseEnums(string(b)), nil
}
