package bootstrap

import (
	"fmt"

	"AuthKit/internal/cli/repo"
	fsrepo "AuthKit/internal/cli/repo/fs"
	"AuthKit/internal/cli/repo/keychain"
	reposqlite "AuthKit/internal/cli/repo/sqlite"
	"AuthKit/internal/config"
)

// OpenTokenStore открывает хранилище access-токена, выбранное в конфиге,
// и возвращает (store, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenTokenStore(cfg *config.Config) (repo.TokenStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.TokenBackend {
	case config.BackendKeyring:
		return keychain.TokenKeyringStore{}, noop, nil
	case config.BackendSQLite:
		r, err := reposqlite.Open(cfg.ClientDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open client db: %w", err)
		}
		if err := r.Migrate(); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("migrate client db: %w", err)
		}
		return r, r.Close, nil
	case config.BackendFile, "":
		return fsrepo.TokenFSStore{Path: cfg.TokenFile}, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown token backend %q", cfg.TokenBackend)
	}
}
