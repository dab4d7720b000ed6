package reference

import (
	"sakura/internal/schema"
)

// Attributes возвращает атрибуты, у которых enum есть в каталоге.
// id — сквозной 1-based номер среди отданных.
func Attributes(cat *schema.Catalog, mapping []Attribute) []AttributeItem {
	out := make([]AttributeItem, 0, len(mapping))
	for _, a := range mapping {
		if _, ok := cat.Lookup(a.Enum); !ok {
			continue
		}
		out = append(out, AttributeItem{ID: len(out) + 1, Key: a.Key, Enum: a.Enum})
	}
	return out
}

// Options — плоский список значений по всем известным атрибутам.
func Options(cat *schema.Catalog, mapping []Attribute) []OptionItem {
	out := make([]OptionItem, 0)
	for _, a := range mapping {
		out = append(out, optionsFor(cat, a)...)
	}
	return out
}

// OptionsFor — значения одного атрибута (пусто, если enum'а нет).
func OptionsFor(cat *schema.Catalog, a Attribute) []OptionItem {
	out := optionsFor(cat, a)
	if out == nil {
		return []OptionItem{}
	}
	return out
}

func optionsFor(cat *schema.Catalog, a Attribute) []OptionItem {
	vals, ok := cat.Lookup(a.Enum)
	if !ok {
		return nil
	}
	out := make([]OptionItem, 0, len(vals))
	for _, v := range vals {
		out = append(out, OptionItem{
			Attribute: a.Key,
			Value:     v,
			Label:     schema.Label(v),
			IsActive:  true,
		})
	}
	return out
}

// Enums — enum'ы каталога, на которые ссылается mapping.
func Enums(cat *schema.Catalog, mapping []Attribute) map[string][]string {
	out := make(map[string][]string)
	for _, a := range mapping {
		if _, done := out[a.Enum]; done {
			continue
		}
		if vals, ok := cat.Lookup(a.Enum); ok {
			out[a.Enum] = vals
		}
	}
	return out
}
