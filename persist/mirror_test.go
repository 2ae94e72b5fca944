// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import (
	"context"
	"log/slog"
	"testing"

	"github.com/wanderhome/wanderhome/state"
)

func TestMirrorPersistsLatestState(t *testing.T) {
	store := openTestStore(t)
	appState := state.New()

	mirror := NewMirror(store, appState, slog.New(slog.DiscardHandler))

	// A burst of mutations; the mirror may coalesce intermediate
	// snapshots, but after Stop the blob must hold the final state.
	for range 5 {
		appState.Update(func(s *state.AppState) {
			s.Notifications.Unread++
		})
	}
	appState.Update(func(s *state.AppState) {
		s.Session.Credential = "tok-mirror"
		s.Search.Location = "Porto"
	})

	mirror.Stop()

	got, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("mirror never wrote a snapshot")
	}
	if got.Unread != 5 {
		t.Errorf("unread = %d, want 5", got.Unread)
	}
	if got.Credential != "tok-mirror" || got.Search.Location != "Porto" {
		t.Errorf("final mutation lost: %+v", got)
	}
}

func TestMirrorStopIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	appState := state.New()

	mirror := NewMirror(store, appState, slog.New(slog.DiscardHandler))
	mirror.Stop()
	mirror.Stop()
}
