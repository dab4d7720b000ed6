package reference

// Attribute связывает внешний ключ дропдауна с именем enum'а из схемы
type Attribute struct {
	Key  string `json:"key" yaml:"key"`
	Enum string `json:"enum" yaml:"enum"`
}

// AttributeItem — элемент ответа /api/dropdown/attributes
type AttributeItem struct {
	ID   int    `json:"id" yaml:"id"`
	Key  string `json:"key" yaml:"key"`
	Enum string `json:"enum" yaml:"enum"`
}

// OptionItem — одно значение дропдауна
type OptionItem struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Value     string `json:"value" yaml:"value"`
	Label     string `json:"label" yaml:"label"`
	IsActive  bool   `json:"is_active" yaml:"is_active"`
}
