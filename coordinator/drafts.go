// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package coordinator

import (
	"context"

	"github.com/wanderhome/wanderhome/state"
)

// UpdateSearchDraft merges the patch into the search draft. Unset
// fields keep their current value.
func (c *Coordinator) UpdateSearchDraft(patch state.SearchPatch) {
	c.store.Update(func(s *state.AppState) {
		patch.Apply(&s.Search)
	})
}

// ResetSearchDraft returns the search draft to its boot default.
func (c *Coordinator) ResetSearchDraft() {
	c.store.Update(func(s *state.AppState) {
		s.Search = state.DefaultSearchDraft()
	})
}

// UpdateBookingDraft merges the patch into the booking draft.
func (c *Coordinator) UpdateBookingDraft(patch state.BookingPatch) {
	c.store.Update(func(s *state.AppState) {
		patch.Apply(&s.Booking)
	})
}

// ClearBookingDraft discards the in-progress booking, typically after
// the booking was submitted or abandoned.
func (c *Coordinator) ClearBookingDraft() {
	c.store.Update(func(s *state.AppState) {
		s.Booking = state.DefaultBookingDraft()
	})
}

// SetRole switches the active account mode. The service identity is
// untouched; this is a client-side view preference.
func (c *Coordinator) SetRole(role state.Role) {
	c.store.Update(func(s *state.AppState) {
		s.Role = role
	})
}

// SetUnread replaces the unread counter, typically from a server-side
// count fetched at login. Negative values clamp to zero.
func (c *Coordinator) SetUnread(count int) {
	c.store.Update(func(s *state.AppState) {
		if count < 0 {
			count = 0
		}
		s.Notifications.Unread = count
	})
}

// IncrementUnread adds one to the unread counter.
func (c *Coordinator) IncrementUnread() {
	c.store.Update(func(s *state.AppState) {
		s.Notifications.Unread++
	})
}

// DecrementUnread subtracts one from the unread counter, saturating at
// zero.
func (c *Coordinator) DecrementUnread() {
	c.store.Update(func(s *state.AppState) {
		if s.Notifications.Unread > 0 {
			s.Notifications.Unread--
		}
	})
}

// MarkAllRead zeroes the local counter and tells the service. The
// remote call is best effort: a failure is logged, not surfaced, and
// the local counter stays at zero either way.
func (c *Coordinator) MarkAllRead(ctx context.Context) {
	credential := c.store.Snapshot().Session.Credential
	c.store.Update(func(s *state.AppState) {
		s.Notifications.Unread = 0
	})
	if credential == "" {
		return
	}
	if err := c.sessions(credential).MarkRead(ctx); err != nil {
		c.logger.Warn("mark-read call failed, local counter zeroed anyway", "error", err)
	}
}
