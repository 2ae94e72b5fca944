// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package state

// Status describes where the session is in its authentication lifecycle.
type Status string

const (
	// StatusUnauthenticated means no identity is established and no
	// auth operation is in flight.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusPending means a login, registration, or session restore is
	// in flight. Pending is transient: every pending session resolves
	// to authenticated, error, or unauthenticated.
	StatusPending Status = "pending"
	// StatusAuthenticated means Identity and Credential are both set.
	StatusAuthenticated Status = "authenticated"
	// StatusError means the last login or registration attempt failed.
	// The failure message is in Session.LastError.
	StatusError Status = "error"
)

// Role is the account role on the booking platform.
type Role string

const (
	RoleTraveler Role = "traveler"
	RoleHost     Role = "host"
	RoleAdmin    Role = "admin"
	// RoleBoth marks accounts that act as traveler and host.
	RoleBoth Role = "both"
)

// Identity is the authenticated user record returned by the booking
// service. Zero value means "no identity".
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Verified    bool   `json:"verified"`
}

// Session is the identity/credential/status aggregate.
//
// Invariant: Identity and Credential are both set or both empty, never
// one without the other. Status is StatusAuthenticated exactly when
// both are set. The Store's single mutation entry point is what makes
// the invariant maintainable: every transition sets the three fields
// together.
type Session struct {
	// Identity is the authenticated user, nil when logged out.
	Identity *Identity
	// Credential is the opaque bearer token proving the identity to
	// the booking service and the realtime channel. Empty when logged
	// out.
	Credential string
	// Status is the lifecycle position.
	Status Status
	// LastError is the user-facing message from the last failed login
	// or registration. Never persisted; cleared on logout and on the
	// start of a new attempt.
	LastError string
}

// SearchDraft holds in-progress search criteria. The coordinator
// stores whatever it is given: date ordering and other cross-field
// validation belong to the caller. Drafts survive logout and process
// restarts by design.
type SearchDraft struct {
	Location      string   `json:"location,omitempty"`
	CheckIn       string   `json:"check_in,omitempty"`  // ISO calendar date (2026-08-28)
	CheckOut      string   `json:"check_out,omitempty"` // ISO calendar date
	Guests        int      `json:"guests"`
	MinPrice      int      `json:"min_price,omitempty"`
	MaxPrice      int      `json:"max_price,omitempty"`
	PropertyTypes []string `json:"property_types,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	SortBy        string   `json:"sort_by,omitempty"`
}

// DefaultSearchDraft returns an empty draft with the guest count at
// its floor of one.
func DefaultSearchDraft() SearchDraft {
	return SearchDraft{Guests: 1}
}

// BookingDraft holds an in-progress booking request. Same persistence
// and logout-survival semantics as SearchDraft.
type BookingDraft struct {
	ListingID       string `json:"listing_id,omitempty"`
	CheckIn         string `json:"check_in,omitempty"`
	CheckOut        string `json:"check_out,omitempty"`
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// DefaultBookingDraft returns an empty draft with the guest count at
// its floor of one.
func DefaultBookingDraft() BookingDraft {
	return BookingDraft{Guests: 1}
}

// Notifications tracks the unread notification counter. Unread is
// never negative: decrements saturate at zero.
type Notifications struct {
	Unread int `json:"unread"`
}

// Channel reflects the observable liveness of the realtime event
// channel. The connection handle itself is owned exclusively by the
// realtime manager; this struct only mirrors transport state for
// consumers.
type Channel struct {
	// Live is true while the event channel is receiving. It may lag a
	// successful connect by one poll round-trip.
	Live bool
}

// AppState is the full coordinator state. The Store owns the only
// mutable copy; everything consumers see is a snapshot.
type AppState struct {
	Session       Session
	Search        SearchDraft
	Booking       BookingDraft
	Notifications Notifications
	Channel       Channel
	// Role is the active account mode chosen in the client (a host
	// account can browse as a traveler). Persisted; cleared on logout.
	Role Role
}

// Clone returns a deep copy. Snapshots handed to subscribers must not
// share mutable structure with the Store's copy.
func (s AppState) Clone() AppState {
	copied := s
	if s.Session.Identity != nil {
		identity := *s.Session.Identity
		copied.Session.Identity = &identity
	}
	if s.Search.PropertyTypes != nil {
		copied.Search.PropertyTypes = append([]string(nil), s.Search.PropertyTypes...)
	}
	if s.Search.Amenities != nil {
		copied.Search.Amenities = append([]string(nil), s.Search.Amenities...)
	}
	return copied
}
