// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Keyring stores the token in the OS keychain/credential store.
// All methods are safe for concurrent use.
type Keyring struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// openKeyring opens the OS keyring using native platform backends only.
// No file fallback here; Open handles that separately.
func openKeyring() (*Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Try macOS Keychain first, then pass (password store) as fallback.
		allowedBackends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.PassBackend,
		}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		return nil, errors.New("native secure storage not supported on this OS")
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
	}
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &Keyring{ring: ring}, nil
}

// Load retrieves the access token. A missing key yields an empty token.
func (k *Keyring) Load() (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	it, err := k.ring.Get(KeyAccessToken)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(it.Data), nil
}

// Save stores the access token.
func (k *Keyring) Save(token string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.ring.Set(keyring.Item{Key: KeyAccessToken, Data: []byte(token)})
}

// Clear removes the access token. Clearing an empty store is a no-op.
func (k *Keyring) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.ring.Remove(KeyAccessToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
