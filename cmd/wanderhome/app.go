// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/wanderhome/wanderhome/api"
	"github.com/wanderhome/wanderhome/coordinator"
	"github.com/wanderhome/wanderhome/lib/config"
	"github.com/wanderhome/wanderhome/persist"
	"github.com/wanderhome/wanderhome/realtime"
	"github.com/wanderhome/wanderhome/state"
)

// app wires the full coordinator stack for one CLI invocation: config,
// durable store, state store, service client, realtime manager, and
// the coordinator on top.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *state.Store
	durable *persist.Store
	mirror  *persist.Mirror
	manager *realtime.Manager
	coord   *coordinator.Coordinator
}

// newApp boots the stack: load config, open storage, seed state from
// the persisted projection, then resolve the pending session with
// RestoreSession (which also connects the realtime channel on
// success).
func newApp(configPath string, verbose bool) (*app, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsurePaths(); err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.Service.BaseURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	durable, err := persist.Open(persist.Config{
		Path:   cfg.Storage.StatePath,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	store := state.New()
	seedCtx, cancel := context.WithTimeout(context.Background(), cfg.Service.Timeout())
	defer cancel()
	if projection, ok, err := durable.Load(seedCtx); err != nil {
		durable.Close()
		return nil, err
	} else if ok {
		store.Update(projection.Apply)
	}

	mirror := persist.NewMirror(durable, store, logger)

	manager := realtime.New(realtime.Config{
		Store:  store,
		Logger: logger,
		Source: func(credential string) realtime.EventSource {
			return client.SessionFromCredential(credential)
		},
	})

	coord := coordinator.New(coordinator.Config{
		Store:   store,
		Client:  client,
		Channel: manager,
		Logger:  logger,
		Sessions: func(credential string) coordinator.AuthSession {
			return client.SessionFromCredential(credential)
		},
	})

	a := &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		durable: durable,
		mirror:  mirror,
		manager: manager,
		coord:   coord,
	}

	restoreCtx, cancelRestore := a.requestContext()
	a.coord.RestoreSession(restoreCtx)
	cancelRestore()
	return a, nil
}

// requestContext bounds one interactive service call.
func (a *app) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.cfg.Service.Timeout())
}

// close tears the stack down in dependency order: channel first, then
// the mirror (final synchronous flush), then the database.
func (a *app) close() {
	a.manager.Disconnect()
	a.mirror.Stop()
	if err := a.durable.Close(); err != nil {
		a.logger.Warn("closing state database", "error", err)
	}
}

// printStatus renders the current snapshot for human consumption.
func (a *app) printStatus() {
	s := a.store.Snapshot()

	switch s.Session.Status {
	case state.StatusAuthenticated:
		identity := s.Session.Identity
		fmt.Printf("Signed in as %s (%s)\n", identity.DisplayName, identity.Email)
		if s.Role != "" {
			fmt.Printf("Active role: %s\n", s.Role)
		}
	case state.StatusError:
		fmt.Printf("Sign-in failed: %s\n", s.Session.LastError)
	case state.StatusPending:
		fmt.Println("Session pending")
	default:
		fmt.Println("Signed out")
	}

	if s.Channel.Live {
		fmt.Println("Realtime channel: live")
	} else {
		fmt.Println("Realtime channel: down")
	}
	fmt.Printf("Unread notifications: %d\n", s.Notifications.Unread)

	if s.Search.Location != "" || s.Search.CheckIn != "" {
		fmt.Printf("Search draft: %s %s..%s, %d guest(s)\n",
			s.Search.Location, s.Search.CheckIn, s.Search.CheckOut, s.Search.Guests)
	}
	if s.Booking.ListingID != "" {
		fmt.Printf("Booking draft: listing %s %s..%s, %d guest(s)\n",
			s.Booking.ListingID, s.Booking.CheckIn, s.Booking.CheckOut, s.Booking.Guests)
	}
}
