package blob

import (
	"encoding/hex"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// NewName генерирует имя вида <32 hex><.ext>; ext берётся из исходного имени.
func NewName(original, defaultExt string) string {
	u := uuid.New()
	return hex.EncodeToString(u[:]) + Ext(original, defaultExt)
}

// Ext возвращает расширение исходного имени в нижнем регистре (с точкой).
// Нет расширения — defaultExt.
func Ext(original, defaultExt string) string {
	name := norm.NFC.String(strings.TrimSpace(original))
	// браузеры на Windows иногда присылают полный путь
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := path.Ext(name)
	// ".bashrc" и "file." — без расширения
	if ext == "" || ext == "." || ext == name {
		return defaultExt
	}
	return strings.ToLower(ext)
}
