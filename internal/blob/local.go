package blob

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Object — то, что записали в хранилище
type Object struct {
	Name   string
	Size   int64
	SHA256 string
}

type Store interface {
	Put(name string, r io.Reader) (Object, error)
	Delete(name string) error
	Path(name string) (string, error) // локальный путь (для local)
}

// StoreError — ошибка записи/удаления файла.
type StoreError struct {
	Op   string
	Name string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("blob %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

type LocalStore struct {
	Root string // например, "./uploads"
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// EnsureRoot создаёт корневую папку, если её нет.
func (s *LocalStore) EnsureRoot() error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return &StoreError{Op: "mkdir", Name: s.Root, Err: err}
	}
	return nil
}

func (s *LocalStore) Put(name string, r io.Reader) (Object, error) {
	full, err := s.Path(name)
	if err != nil {
		return Object{}, err
	}
	if err := s.EnsureRoot(); err != nil {
		return Object{}, err
	}
	// O_EXCL: имя случайное, перезапись чужого файла — ошибка
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Object{}, &StoreError{Op: "create", Name: name, Err: err}
	}
	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, h), r)
	if err == nil {
		err = f.Sync()
	}
	if err != nil {
		// обрезок под случайным именем никому не нужен
		_ = f.Close()
		_ = os.Remove(full)
		return Object{}, &StoreError{Op: "write", Name: name, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return Object{}, &StoreError{Op: "close", Name: name, Err: err}
	}
	return Object{Name: name, Size: n, SHA256: hex.EncodeToString(h.Sum(nil))}, nil
}

func (s *LocalStore) Delete(name string) error {
	full, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		return &StoreError{Op: "delete", Name: name, Err: err}
	}
	return nil
}

// Path — только плоские имена внутри Root
func (s *LocalStore) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", &StoreError{Op: "path", Name: name, Err: fmt.Errorf("invalid blob name")}
	}
	return filepath.Join(s.Root, name), nil
}
