// Package keychain stores the access token in the OS keyring
// (Secret Service, macOS Keychain, Windows Credential Manager).
package keychain

import (
	"errors"

	"AuthKit/internal/cli/repo"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service name used when none is given.
const DefaultService = "AuthKit"

type TokenKeyringStore struct {
	Service string
}

var _ repo.TokenStore = TokenKeyringStore{}

func (s TokenKeyringStore) service() string {
	if s.Service == "" {
		return DefaultService
	}
	return s.Service
}

func (s TokenKeyringStore) Save(token string) error {
	return keyring.Set(s.service(), repo.AccessKey, token)
}

// Load returns "", nil when the keyring has no entry.
func (s TokenKeyringStore) Load() (string, error) {
	tok, err := keyring.Get(s.service(), repo.AccessKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

func (s TokenKeyringStore) Clear() error {
	err := keyring.Delete(s.service(), repo.AccessKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
