// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wanderhome/wanderhome/api"
	"github.com/wanderhome/wanderhome/lib/clock"
	"github.com/wanderhome/wanderhome/state"
)

// EventSource is one credential-bound handle on the event feed. The
// production implementation is *api.Session.
type EventSource interface {
	Events(ctx context.Context, options api.EventOptions) (*api.EventBatch, error)
}

// maxPollRetries is the number of consecutive poll failures allowed
// before the loop parks. The channel stays down (liveness false) until
// the next Connect; a dead feed must not turn into a retry storm.
const maxPollRetries = 5

// longPollWaitMS is the server-side hold time in milliseconds for
// normal polls. The server returns early when events arrive.
const longPollWaitMS = 30000

// retryWaitMS is the server-side hold time used on the poll after an
// error. Short so the retry resolves quickly.
const retryWaitMS = 1000

// retryBackoff is the client-side pause between failed polls. A
// connection-refused error returns in microseconds, so unlike a
// server-side timeout it provides no natural pacing of its own.
const retryBackoff = 2 * time.Second

// countedKinds is the fixed classification set: every inbound event
// whose kind is here increments the unread counter exactly once.
// Unknown kinds are dropped without effect.
var countedKinds = map[string]bool{
	api.EventNewMessage:       true,
	api.EventBookingRequested: true,
	api.EventBookingConfirmed: true,
	api.EventBookingDeclined:  true,
	api.EventBookingCancelled: true,
}

// Config holds the parameters for a Manager.
type Config struct {
	// Store receives the counter increments and liveness transitions.
	Store *state.Store
	// Source returns a credential-bound event source. Called once per
	// Connect.
	Source func(credential string) EventSource
	// Clock paces retry backoff. If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger receives operational messages. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Manager owns the single live event channel. At most one poll loop
// exists at a time: Connect closes any prior loop before starting a
// new one, and Disconnect is an idempotent close.
//
// Manager is safe for concurrent use.
type Manager struct {
	store  *state.Store
	source func(credential string) EventSource
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New returns a disconnected Manager.
func New(cfg Config) *Manager {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  cfg.Store,
		source: cfg.Source,
		clock:  clk,
		logger: logger,
	}
}

// Connect opens the event channel for the given credential. Any prior
// channel is closed first, and Connect does not return until the prior
// loop has fully stopped, so two loops never overlap even across a
// rapid logout/login sequence.
func (m *Manager) Connect(credential string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	go m.poll(ctx, m.source(credential), done)
}

// Disconnect closes the event channel if one exists. Safe to call when
// no channel exists.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// stopLocked cancels the current loop and waits for it to exit. Must
// be called with m.mu held.
func (m *Manager) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
	m.done = nil
}

// poll is the channel loop: one anchor poll to capture the feed head,
// then repeated long polls from that cursor. Every mutation it makes
// goes through the store's single update entry point.
func (m *Manager) poll(ctx context.Context, source EventSource, done chan struct{}) {
	defer close(done)
	defer m.setLive(false)

	cursor := ""
	retries := 0
	anchored := false

	for {
		if ctx.Err() != nil {
			return
		}

		options := api.EventOptions{Cursor: cursor, SetWait: true}
		switch {
		case !anchored:
			// Anchor at the current head without blocking. Events from
			// before the connect are the server's unread count's
			// business, not this loop's.
			options.WaitMS = 0
		case retries > 0:
			options.WaitMS = retryWaitMS
		default:
			options.WaitMS = longPollWaitMS
		}

		batch, err := source.Events(ctx, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			retries++
			m.setLive(false)
			// TCP-level errors often poison a pooled connection. Drop
			// idle connections so the retry opens a fresh socket.
			if closer, ok := source.(interface{ CloseIdleConnections() }); ok {
				closer.CloseIdleConnections()
			}
			if retries > maxPollRetries {
				m.logger.Warn("event channel parked after repeated poll failures",
					"attempts", retries,
					"error", err,
				)
				return
			}
			m.logger.Debug("event poll error, retrying",
				"attempt", retries,
				"max_attempts", maxPollRetries,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return
			case <-m.clock.After(retryBackoff):
			}
			continue
		}

		retries = 0
		anchored = true
		cursor = batch.NextCursor
		m.deliver(batch.Events)
	}
}

// deliver applies one batch: liveness true plus one counter increment
// per counted event, in a single atomic state update.
func (m *Manager) deliver(events []api.Event) {
	counted := 0
	for _, event := range events {
		if countedKinds[event.Kind] {
			counted++
		} else {
			m.logger.Debug("ignoring unclassified event", "kind", event.Kind, "event_id", event.ID)
		}
	}

	m.store.Update(func(s *state.AppState) {
		s.Channel.Live = true
		s.Notifications.Unread += counted
	})

	if counted > 0 {
		m.logger.Info("realtime events received",
			"total", len(events),
			"counted", counted,
		)
	}
}

func (m *Manager) setLive(live bool) {
	m.store.Update(func(s *state.AppState) {
		s.Channel.Live = live
	})
}
