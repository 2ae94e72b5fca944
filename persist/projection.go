// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package persist

import "github.com/wanderhome/wanderhome/state"

// Projection is the subset of coordinator state that survives a
// process restart, expressed as an explicit allow-list type. A field
// that is not here is not persisted, period: LastError, the live
// connection handle, and the transient pending flag all restart fresh
// by construction rather than by an exclusion rule someone must
// remember to maintain.
type Projection struct {
	Identity *state.Identity `json:"identity,omitempty"`
	// Credential is the stored bearer token. Restore validates it
	// against the service before trusting it.
	Credential string `json:"credential,omitempty"`
	// IsAuthenticated records only whether the last run ended
	// authenticated. The full status enum never persists: every boot
	// starts at pending until restore resolves.
	IsAuthenticated bool               `json:"is_authenticated"`
	Search          state.SearchDraft  `json:"search"`
	Booking         state.BookingDraft `json:"booking"`
	Role            state.Role         `json:"role,omitempty"`
	Unread          int                `json:"unread"`
}

// FromState maps live state to its persisted projection. Pure:
// no I/O, no mutation of s.
func FromState(s state.AppState) Projection {
	return Projection{
		Identity:        s.Session.Identity,
		Credential:      s.Session.Credential,
		IsAuthenticated: s.Session.Status == state.StatusAuthenticated,
		Search:          s.Search,
		Booking:         s.Booking,
		Role:            s.Role,
		Unread:          s.Notifications.Unread,
	}
}

// Apply seeds a boot-time state from the projection. Session status is
// left at pending regardless of IsAuthenticated: the stored credential
// is not trusted until RestoreSession verifies it. Negative unread
// counts in a tampered blob clamp to zero.
func (p Projection) Apply(s *state.AppState) {
	if p.Identity != nil {
		identity := *p.Identity
		s.Session.Identity = &identity
	}
	s.Session.Credential = p.Credential
	if p.Search.Guests >= 1 {
		s.Search = p.Search
	}
	if p.Booking.Guests >= 1 {
		s.Booking = p.Booking
	}
	s.Role = p.Role
	s.Notifications.Unread = p.Unread
	if s.Notifications.Unread < 0 {
		s.Notifications.Unread = 0
	}
}
