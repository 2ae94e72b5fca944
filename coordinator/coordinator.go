// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/wanderhome/wanderhome/api"
	"github.com/wanderhome/wanderhome/state"
)

// AuthClient is the unauthenticated surface of the booking service.
// The production implementation is *api.Client.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, request api.RegisterRequest) (*api.AuthResult, error)
}

// AuthSession is the credential-bound surface of the booking service.
// The production implementation is *api.Session.
type AuthSession interface {
	WhoAmI(ctx context.Context) (state.Identity, error)
	MarkRead(ctx context.Context) error
}

// Channel is the realtime channel manager. Connect closes any prior
// channel first; Disconnect is safe with no channel open.
type Channel interface {
	Connect(credential string)
	Disconnect()
}

// Config holds the collaborators a Coordinator drives.
type Config struct {
	// Store is the single state container. Required.
	Store *state.Store
	// Client performs login and registration. Required.
	Client AuthClient
	// Sessions returns a credential-bound service session. Required.
	Sessions func(credential string) AuthSession
	// Channel is the realtime channel manager. Required.
	Channel Channel
	// Logger receives operational messages. If nil, slog.Default() is
	// used.
	Logger *slog.Logger
}

// Coordinator owns the authentication lifecycle: login, registration,
// the one-time boot restore, logout, and the draft and counter
// operations layered beside them. All state flows through the store's
// single mutation entry point; the coordinator adds sequencing and
// side effects.
//
// Coordinator is safe for concurrent use. Overlapping lifecycle calls
// are legal: the generation token decides which responses still apply.
type Coordinator struct {
	store    *state.Store
	client   AuthClient
	sessions func(credential string) AuthSession
	channel  Channel
	logger   *slog.Logger

	// generation invalidates in-flight lifecycle calls. Logout bumps
	// it; a network response is applied only if the generation it
	// captured at start is still current.
	generation atomic.Int64

	// lifecycleMu serializes the apply-then-connect step of a
	// successful authentication against Logout's disconnect. Without
	// it a logout could land between the state apply and the channel
	// connect, leaving a live channel bound to a logged-out session
	// with nothing left to tear it down.
	lifecycleMu sync.Mutex
}

// New wires a Coordinator. Panics on a missing required collaborator:
// construction happens once at boot and a nil here is a wiring bug,
// not a runtime condition.
func New(cfg Config) *Coordinator {
	if cfg.Store == nil || cfg.Client == nil || cfg.Sessions == nil || cfg.Channel == nil {
		panic("coordinator: Config requires Store, Client, Sessions, and Channel")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		store:    cfg.Store,
		client:   cfg.Client,
		sessions: cfg.Sessions,
		channel:  cfg.Channel,
		logger:   logger,
	}
}

// Login authenticates with email and password. The session moves to
// pending immediately, then to authenticated or error when the call
// resolves. On success the realtime channel is connected with the new
// credential. The returned error mirrors Session.LastError; callers
// that render state can ignore it.
//
// A Logout that lands while the call is in flight wins: the late
// success is discarded and the session stays logged out.
func (c *Coordinator) Login(ctx context.Context, email, password string) error {
	generation := c.generation.Load()
	c.beginAttempt()

	result, err := c.client.Login(ctx, email, password)
	if err != nil {
		c.failAttempt(generation, err)
		return err
	}
	if c.completeAuth(generation, result) {
		c.logger.Info("login complete", "user_id", result.Identity.ID)
	} else {
		c.logger.Info("discarding stale login response", "user_id", result.Identity.ID)
	}
	return nil
}

// Register creates an account and signs it in. Same lifecycle contract
// as Login.
func (c *Coordinator) Register(ctx context.Context, request api.RegisterRequest) error {
	generation := c.generation.Load()
	c.beginAttempt()

	result, err := c.client.Register(ctx, request)
	if err != nil {
		c.failAttempt(generation, err)
		return err
	}
	if c.completeAuth(generation, result) {
		c.logger.Info("registration complete", "user_id", result.Identity.ID)
	} else {
		c.logger.Info("discarding stale registration response", "user_id", result.Identity.ID)
	}
	return nil
}

// RestoreSession resolves the boot-time pending state. If a persisted
// credential exists it is verified against the service; on success the
// session is authenticated and the channel connected. A missing or
// rejected credential lands on unauthenticated with no LastError: a
// stale token on boot is routine, not a failure the user must see.
//
// Call once at boot, after the store is seeded from the persisted
// projection.
func (c *Coordinator) RestoreSession(ctx context.Context) {
	generation := c.generation.Load()

	credential := c.store.Snapshot().Session.Credential
	if credential == "" {
		c.store.Update(func(s *state.AppState) {
			s.Session = state.Session{Status: state.StatusUnauthenticated}
			s.Role = ""
		})
		return
	}

	identity, err := c.sessions(credential).WhoAmI(ctx)
	if err != nil {
		c.logger.Info("persisted credential rejected, starting signed out", "error", err)
		c.store.Update(func(s *state.AppState) {
			if c.generation.Load() != generation {
				return
			}
			// Same terminal state as Logout: the projection-seeded
			// role must not outlive the credential it came with.
			s.Session = state.Session{Status: state.StatusUnauthenticated}
			s.Role = ""
		})
		return
	}

	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	applied := false
	c.store.Update(func(s *state.AppState) {
		if c.generation.Load() != generation {
			return
		}
		s.Session = state.Session{
			Identity:   &identity,
			Credential: credential,
			Status:     state.StatusAuthenticated,
		}
		if s.Role == "" {
			s.Role = identity.Role
		}
		applied = true
	})
	if applied {
		c.channel.Connect(credential)
		c.logger.Info("session restored", "user_id", identity.ID)
	}
}

// Logout tears the session down: the channel closes, identity and
// credential clear, and the generation bumps so any in-flight login,
// registration, or restore resolves into a no-op. Drafts and the
// unread counter survive untouched; only the active role resets with
// the session.
//
// Safe to call in any state, including while another lifecycle call is
// pending. The generation bump happens before taking the lifecycle
// lock so that a completion already holding the lock still sees the
// logout when it checks.
func (c *Coordinator) Logout() {
	c.generation.Add(1)
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	c.channel.Disconnect()
	c.store.Update(func(s *state.AppState) {
		s.Session = state.Session{Status: state.StatusUnauthenticated}
		s.Role = ""
	})
	c.logger.Info("logged out")
}

// ClearError acknowledges a failed attempt by clearing the message.
// Status, identity, and credential are left exactly as they are.
func (c *Coordinator) ClearError() {
	c.store.Update(func(s *state.AppState) {
		s.Session.LastError = ""
	})
}

// beginAttempt moves the session to pending and clears the previous
// attempt's error.
func (c *Coordinator) beginAttempt() {
	c.store.Update(func(s *state.AppState) {
		s.Session.Status = state.StatusPending
		s.Session.LastError = ""
	})
}

// failAttempt records a failed login or registration, unless a logout
// already superseded the attempt.
func (c *Coordinator) failAttempt(generation int64, err error) {
	c.store.Update(func(s *state.AppState) {
		if c.generation.Load() != generation {
			return
		}
		s.Session.Status = state.StatusError
		s.Session.LastError = userMessage(err)
	})
}

// completeAuth applies a successful login or registration and connects
// the channel. Returns false when the generation moved on and the
// result was discarded. The lifecycle lock holds across the apply and
// the connect so a concurrent Logout orders entirely before or
// entirely after both.
func (c *Coordinator) completeAuth(generation int64, result *api.AuthResult) bool {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	applied := false
	c.store.Update(func(s *state.AppState) {
		if c.generation.Load() != generation {
			return
		}
		identity := result.Identity
		s.Session = state.Session{
			Identity:   &identity,
			Credential: result.Credential,
			Status:     state.StatusAuthenticated,
		}
		if s.Role == "" {
			s.Role = identity.Role
		}
		applied = true
	})
	if applied {
		c.channel.Connect(result.Credential)
	}
	return applied
}

// userMessage maps a failure to the message shown next to the form.
// Service error codes get specific wording; anything else (network
// down, malformed response) gets a generic retry prompt.
func userMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case api.ErrCodeForbidden:
			return "Incorrect email or password."
		case api.ErrCodeEmailInUse:
			return "An account with this email already exists."
		case api.ErrCodeUnknownToken:
			return "Your session has expired. Please sign in again."
		case api.ErrCodeInvalidParam, api.ErrCodeMissingParam:
			if apiErr.Message != "" {
				return apiErr.Message
			}
			return fmt.Sprintf("The service rejected the request (%s).", apiErr.Code)
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return "Something went wrong. Please try again."
}
