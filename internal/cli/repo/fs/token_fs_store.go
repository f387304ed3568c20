package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"AuthKit/internal/cli/repo"
)

// TokenFSStore — файловое хранилище access-токена для CLI.
// Empty Path means <user config dir>/AuthKit/access.
type TokenFSStore struct {
	Path string
}

var _ repo.TokenStore = TokenFSStore{}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "AuthKit")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s TokenFSStore) tokenPath() (string, error) {
	if s.Path != "" {
		if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
			return "", err
		}
		return s.Path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, repo.AccessKey), nil
}

// Save сохраняет токен в файл, перезаписывая предыдущее значение.
func (s TokenFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// Load читает токен из файла. Отсутствующий или пустой файл — не ошибка.
func (s TokenFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	return strings.TrimRight(string(b), "\r\n\t "), nil
}

// Clear удаляет файл токена.
func (s TokenFSStore) Clear() error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
