package schema

import (
	"sync"

	"go.uber.org/zap"
)

// Source лениво загружает каталог один раз за жизнь процесса.
// Изменения файла после первой загрузки не подхватываются.
type Source struct {
	path string
	log  *zap.Logger

	once sync.Once
	cat  *Catalog
	err  error
}

func NewSource(path string, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{path: path, log: log}
}

// Catalog возвращает закэшированный каталог. Ошибка чтения не поднимается наверх:
// пишем warn и отдаём пустой каталог.
func (s *Source) Catalog() *Catalog {
	s.once.Do(func() {
		cat, err := LoadFile(s.path)
		if err != nil {
			s.log.Warn("schema enums unavailable, serving empty catalog",
				zap.String("path", s.path), zap.Error(err))
			s.err = err
			cat = NewCatalog()
		} else {
			s.log.Info("schema enums loaded",
				zap.String("path", s.path), zap.Int("enums", cat.Len()))
		}
		s.cat = cat
	})
	return s.cat
}

// Err — ошибка загрузки каталога; если загрузки ещё не было, выполняет её.
func (s *Source) Err() error {
	s.Catalog()
	return s.err
}

func (s *Source) Path() string { return s.path }
