// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

// Package store persists the learning state as a single JSON document.
// Two backends exist: a plain file with atomic rewrite, and a BadgerDB
// key-value store for deployments that already run one.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/jcarmona/fitbrain/internal/engine"
)

// FileStore persists the learning state to a single JSON file. Saves are
// atomic: write to a temp file in the same directory, fsync, rename.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore returns a file-backed store. The parent directory is
// created if missing.
func NewFileStore(path string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &FileStore{
		path: path,
		log:  log.With().Str("component", "store").Str("backend", "file").Logger(),
	}, nil
}

// Load reads the state document. A missing file yields empty defaults; a
// corrupt one is logged and also yields defaults, never an error. The
// engine must always be able to start.
func (s *FileStore) Load(ctx context.Context) (*engine.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info().Str("path", s.path).Msg("no state file, starting empty")
			return engine.NewState(), nil
		}
		s.log.Warn().Err(err).Str("path", s.path).Msg("state file unreadable, starting empty")
		return engine.NewState(), nil
	}

	state := engine.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("state file corrupt, starting empty")
		return engine.NewState(), nil
	}
	return state, nil
}

// Save rewrites the state document atomically. Unlike Load, errors here
// are surfaced: a failed save during ingestion means lost feedback.
func (s *FileStore) Save(ctx context.Context, state *engine.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// Path returns the location of the state document.
func (s *FileStore) Path() string { return s.path }

var _ engine.Store = (*FileStore)(nil)
