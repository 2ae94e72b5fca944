// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wanderhome/wanderhome/state"
)

// Mirror subscribes to a state.Store and writes the projection to
// durable storage after every mutation. Routing persistence through
// the store's subscription means every mutation path (coordinator
// operations and inbound realtime events alike) is mirrored without
// any call site remembering to save.
//
// Writes are asynchronous with latest-wins coalescing: a burst of
// mutations produces one write of the final state, not one write per
// mutation. Stop flushes the current state synchronously before
// returning, so a clean shutdown never loses the last mutation.
type Mirror struct {
	store    *Store
	appState *state.Store
	logger   *slog.Logger

	cancel   func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewMirror starts mirroring appState into store. The caller must call
// Stop before closing the store.
func NewMirror(store *Store, appState *state.Store, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}

	updates, cancel := appState.Subscribe(1)
	mirror := &Mirror{
		store:    store,
		appState: appState,
		logger:   logger,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go mirror.run(updates)
	return mirror
}

func (m *Mirror) run(updates <-chan state.AppState) {
	defer close(m.done)
	for snapshot := range updates {
		m.save(snapshot)
	}
}

func (m *Mirror) save(snapshot state.AppState) {
	// Persistence failures are logged, never surfaced as state errors:
	// a full disk must not break login.
	if err := m.store.Save(context.Background(), FromState(snapshot)); err != nil {
		m.logger.Warn("state snapshot write failed", "error", err)
	}
}

// Stop unsubscribes, waits for in-flight writes, and flushes the
// current state synchronously. Idempotent.
func (m *Mirror) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		<-m.done
		m.save(m.appState.Snapshot())
	})
}
