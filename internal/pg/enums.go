package pg

import (
	"fmt"
	"strings"

	"sakura/internal/schema"
)

// EnumDDL строит CREATE TYPE ... AS ENUM для перечисленных enum'ов каталога.
// Имена типов сохраняют регистр, как их создаёт prisma.
func EnumDDL(cat *schema.Catalog, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if _, done := out[name]; done {
			continue
		}
		vals, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		lits := make([]string, 0, len(vals))
		for _, v := range vals {
			lits = append(lits, quoteLiteral(v))
		}
		out[name] = fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", quoteIdent(name), strings.Join(lits, ", "))
	}
	return out
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
