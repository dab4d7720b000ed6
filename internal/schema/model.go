package schema

import (
	"fmt"
	"slices"
)

// Enum — один enum-блок из schema.prisma
type Enum struct {
	Name   string
	Values []string // порядок как в исходнике
}

// Catalog хранит enum'ы в порядке объявления.
type Catalog struct {
	enums []Enum
	index map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// повторное объявление заменяет значения, позиция остаётся от первого
func (c *Catalog) put(name string, values []string) {
	if i, ok := c.index[name]; ok {
		c.enums[i].Values = values
		return
	}
	c.index[name] = len(c.enums)
	c.enums = append(c.enums, Enum{Name: name, Values: values})
}

func (c *Catalog) Lookup(name string) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.enums[i].Values), true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.enums)
}

func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.enums))
	for _, e := range c.enums {
		out = append(out, e.Name)
	}
	return out
}

// Map — копия каталога в виде name -> values
func (c *Catalog) Map() map[string][]string {
	out := make(map[string][]string, c.Len())
	if c == nil {
		return out
	}
	for _, e := range c.enums {
		out[e.Name] = slices.Clone(e.Values)
	}
	return out
}

// ReadError — schema-файл отсутствует или не читается.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read schema %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
