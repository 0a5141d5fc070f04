// Copyright (c) 2025 Doctors Copilot
// Licensed under the MIT License. See LICENSE file in the project root for details.

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), KeyAccessToken))

	require.NoError(t, s.Save("abc123"))

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestFile_LoadMissing(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), KeyAccessToken))

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing token is not an error")
}

func TestFile_Clear(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), KeyAccessToken))

	require.NoError(t, s.Save("abc123"))
	require.NoError(t, s.Clear())

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFile_ClearIdempotent(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), KeyAccessToken))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestFile_SaveOverwrites(t *testing.T) {
	s := NewFile(filepath.Join(t.TempDir(), KeyAccessToken))

	require.NoError(t, s.Save("first"))
	require.NoError(t, s.Save("second"))

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}
