package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"AuthKit/internal/cli/crypto"
	"AuthKit/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// TokenRepositorySQLite хранит access-токен в локальной БД SQLite.
// Значение шифруется AES-GCM ключом из файла рядом с БД.
type TokenRepositorySQLite struct {
	db  *sql.DB
	key []byte
}

var _ repo.TokenStore = (*TokenRepositorySQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД по пути dbPath
// вместе с ключом шифрования <dbPath>.key.
func Open(dbPath string) (*TokenRepositorySQLite, error) {
	if dbPath == "" {
		return nil, errors.New("empty client db path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}
	key, err := crypto.LoadOrCreateKey(dbPath + ".key")
	if err != nil {
		return nil, fmt.Errorf("load token key: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	return &TokenRepositorySQLite{db: db, key: key}, nil
}

// Close закрывает соединение с БД.
func (r *TokenRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц.
func (r *TokenRepositorySQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

func (r *TokenRepositorySQLite) Save(token string) error {
	c, n, err := crypto.Encrypt([]byte(token), r.key)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`INSERT INTO tokens(key, cipher, nonce, updated_at) VALUES(?, ?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET cipher = excluded.cipher, nonce = excluded.nonce, updated_at = excluded.updated_at`,
		repo.AccessKey, c, n, time.Now().Unix(),
	)
	return err
}

func (r *TokenRepositorySQLite) Load() (string, error) {
	var c, n []byte
	err := r.db.QueryRow(`SELECT cipher, nonce FROM tokens WHERE key = ?`, repo.AccessKey).Scan(&c, &n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	plain, err := crypto.Decrypt(c, n, r.key)
	if err != nil {
		return "", fmt.Errorf("decrypt stored token: %w", err)
	}
	return string(plain), nil
}

func (r *TokenRepositorySQLite) Clear() error {
	_, err := r.db.Exec(`DELETE FROM tokens WHERE key = ?`, repo.AccessKey)
	return err
}
