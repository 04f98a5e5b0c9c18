// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/jcarmona/fitbrain/internal/engine"
)

// stateKey is the single document key; the whole learning state lives
// under it.
var stateKey = []byte("learning_state")

// BadgerStore persists the learning state in a BadgerDB instance.
type BadgerStore struct {
	db  *badger.DB
	log zerolog.Logger
}

// NewBadgerStore opens (or creates) a BadgerDB at path. SyncWrites is on:
// the durability contract requires every ingest to hit disk.
func NewBadgerStore(path string, log zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20 // state documents are small
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{
		db:  db,
		log: log.With().Str("component", "store").Str("backend", "badger").Logger(),
	}, nil
}

// Load reads the state document. Missing or undecodable documents yield
// empty defaults, same contract as the file backend.
func (s *BadgerStore) Load(ctx context.Context) (*engine.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			s.log.Info().Msg("no stored state, starting empty")
			return engine.NewState(), nil
		}
		s.log.Warn().Err(err).Msg("stored state unreadable, starting empty")
		return engine.NewState(), nil
	}

	state := engine.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		s.log.Warn().Err(err).Msg("stored state corrupt, starting empty")
		return engine.NewState(), nil
	}
	return state, nil
}

// Save rewrites the state document in one transaction.
func (s *BadgerStore) Save(ctx context.Context, state *engine.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey, data)
	}); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// RunGC triggers one round of value-log garbage collection. Badger
// returns ErrNoRewrite when there was nothing to reclaim; that is not an
// error for callers.
func (s *BadgerStore) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close flushes and closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ engine.Store = (*BadgerStore)(nil)
