// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"copilot/cli/internal/xdg"
)

// File stores the token in a private file under the XDG state dir.
// Used on platforms without a supported native keychain backend.
type File struct {
	mu   sync.RWMutex
	path string
}

// openFile returns a file-backed store rooted in the XDG state dir.
func openFile() (*File, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return &File{path: filepath.Join(dir, KeyAccessToken)}, nil
}

// NewFile returns a file-backed store at an explicit path. Primarily for tests.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the token. A missing file yields an empty token.
func (f *File) Load() (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with 0600 permissions.
func (f *File) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return os.WriteFile(f.path, []byte(token), 0o600)
}

// Clear removes the token file. Clearing an empty store is a no-op.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
