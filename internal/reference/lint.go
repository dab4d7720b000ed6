package reference

import (
	"fmt"

	"sakura/internal/schema"
)

type Issue struct {
	Key     string `json:"key"`
	Enum    string `json:"enum"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	IssueEnumMissing = "enum_missing"
	IssueEnumShared  = "enum_shared"
)

// Lint сверяет mapping с каталогом: enum'ы, которых нет в схеме, и enum'ы под несколькими ключами.
// Ничего не блокирует — такие атрибуты просто не попадут в ответы.
func Lint(cat *schema.Catalog, mapping []Attribute) []Issue {
	var issues []Issue
	owner := make(map[string]string, len(mapping))
	for _, a := range mapping {
		if _, ok := cat.Lookup(a.Enum); !ok {
			issues = append(issues, Issue{
				Key:     a.Key,
				Enum:    a.Enum,
				Code:    IssueEnumMissing,
				Message: fmt.Sprintf("enum %q not found in schema", a.Enum),
			})
		}
		if prev, ok := owner[a.Enum]; ok {
			issues = append(issues, Issue{
				Key:     a.Key,
				Enum:    a.Enum,
				Code:    IssueEnumShared,
				Message: fmt.Sprintf("enum %q already mapped by key %q", a.Enum, prev),
			})
			continue
		}
		owner[a.Enum] = a.Key
	}
	return issues
}
