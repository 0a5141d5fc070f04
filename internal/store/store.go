// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package store persists the session bearer token between CLI invocations.
// On macOS and Windows the token lives in the OS keychain/credential store via
// the keyring library; elsewhere it falls back to a 0600 file in the XDG state
// dir. Exactly one key is persisted: the access token. Nothing else about the
// session survives the process.
package store

// Store is the session token store.
// Load returns an empty token (not an error) when nothing is persisted, so
// callers can treat "no token" and "never logged in" identically.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "doctors-copilot"

// KeyAccessToken is the single key used for the persisted bearer token.
const KeyAccessToken = "auth_access_token"

// Open returns the platform token store: OS keychain where supported, file
// fallback otherwise.
func Open() (Store, error) {
	if s, err := openKeyring(); err == nil {
		return s, nil
	}
	return openFile()
}
