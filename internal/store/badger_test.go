// fitbrain - Adaptive Fitness Feedback & Inference Engine
// Copyright 2026 J. Carmona
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jcarmona/fitbrain

package store

import (
	"context"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/jcarmona/fitbrain/internal/engine"
)

func newBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := NewBadgerStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadgerStore: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestBadgerStoreLoadEmpty(t *testing.T) {
	s := newBadgerStore(t)
	state, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(state.History) != 0 || state.Patterns == nil {
		t.Error("empty database should yield fresh defaults")
	}
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	s := newBadgerStore(t)
	ctx := context.Background()

	state := engine.NewState()
	state.Generation = 9
	state.ComboStats["back"] = map[string]int{"Pull-ups": 3}

	if err := s.Save(ctx, state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Generation != 9 {
		t.Errorf("generation = %d, want 9", loaded.Generation)
	}
	if loaded.ComboStats["back"]["Pull-ups"] != 3 {
		t.Errorf("combo stats lost: %v", loaded.ComboStats)
	}
}

func TestBadgerStoreCorruptDocument(t *testing.T) {
	s := newBadgerStore(t)
	ctx := context.Background()

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey, []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("seeding corrupt document: %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load on corrupt document: %v", err)
	}
	if len(loaded.History) != 0 || loaded.Patterns == nil {
		t.Error("corrupt document should yield empty defaults")
	}
}

func TestBadgerStoreRunGC(t *testing.T) {
	s := newBadgerStore(t)
	// On a tiny fresh database there is nothing to reclaim; RunGC must
	// swallow ErrNoRewrite.
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC: %v", err)
	}
}
