// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package state

import "sync"

// Store is the single mutable state container of the coordinator. All
// mutation, synchronous operations and inbound realtime events alike,
// funnels through Update, so no reader ever observes a half-applied
// transition and the Session invariant (identity and credential set
// together) holds at every observable instant.
//
// Store is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	state       AppState
	subscribers map[int]chan AppState
	nextID      int
}

// New returns a Store seeded with boot defaults: guest counts at their
// floor of one and session status pending, so consumers can show a
// loading affordance until the one-time session restore resolves.
func New() *Store {
	return &Store{
		state: AppState{
			Session: Session{Status: StatusPending},
			Search:  DefaultSearchDraft(),
			Booking: DefaultBookingDraft(),
		},
		subscribers: make(map[int]chan AppState),
	}
}

// Update applies mutate to the state under the store lock, then
// delivers the post-mutation snapshot to every subscriber. mutate must
// not block or call back into the Store.
func (s *Store) Update(mutate func(*AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)

	for _, subscriber := range s.subscribers {
		snapshot := s.state.Clone()
		select {
		case subscriber <- snapshot:
		default:
			// Slow subscriber: drop its oldest pending snapshot so the
			// latest state wins. Subscribers observe a consistent
			// sequence with gaps, never a stale final value.
			select {
			case <-subscriber:
			default:
			}
			select {
			case subscriber <- snapshot:
			default:
			}
		}
	}
}

// Snapshot returns a deep-copied consistent view of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers an observer. Every mutation delivers the
// post-mutation snapshot on the returned channel. buffer must be at
// least 1; subscribers that fall behind lose intermediate snapshots
// rather than blocking writers. The cancel function unregisters the
// subscriber and closes the channel.
func (s *Store) Subscribe(buffer int) (<-chan AppState, func()) {
	if buffer < 1 {
		buffer = 1
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	channel := make(chan AppState, buffer)
	s.subscribers[id] = channel
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existing, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(existing)
		}
	}
	return channel, cancel
}
