// Copyright (c) 2025 BlueDash Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the persisted auth token store.
//
// The token is the single process-wide credential: one writer (the auth
// flow and logout), many readers (every outbound API call). Callers read
// it synchronously at request-construction time, so clearing the token
// mid-flight only affects calls issued afterwards.
//
// No local validation or expiry tracking is performed. An expired token is
// discovered through a 401 from the remote API, at which point the user is
// prompted to re-authenticate.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bluedash/bluedash-tui/internal/util"
)

// tokenFile is the well-known file name under the data directory.
const tokenFile = "token"

// Store holds the auth token, persisted to a single file.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
}

// Open creates a store backed by dir/token and loads any persisted token.
// A missing or unreadable token file means "not authenticated", not an
// error; the file will be created on the next Set.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	s := &Store{path: filepath.Join(dir, tokenFile)}

	data, err := os.ReadFile(s.path)
	if err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s, nil
}

// Set persists the token and makes it available to all subsequent requests.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := util.AtomicWriteFile(s.path, []byte(token), 0600); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear removes the token from memory and disk. Callers are expected to
// navigate back to the auth screen afterwards.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token returns the current token, or "" when absent.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a non-empty token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
