// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"

	"github.com/wanderhome/wanderhome/state"
)

// AuthResult is returned by Login and Register: the authenticated
// identity and the opaque bearer credential proving it. The credential
// is what the realtime channel and all Session calls carry.
type AuthResult struct {
	Identity   state.Identity `json:"user"`
	Credential string         `json:"token"`
}

// RegisterRequest holds the new-account payload. Field-level
// validation (email shape, password strength) is the server's job; the
// client only rejects obviously incomplete input before spending a
// network round-trip.
type RegisterRequest struct {
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Password    string     `json:"password"`
	DisplayName string     `json:"display_name"`
	Role        state.Role `json:"role"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	Bio         string     `json:"bio,omitempty"`
}

// loginRequest is the wire body for POST /v1/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// whoAmIResponse is the wire body for GET /v1/auth/whoami.
type whoAmIResponse struct {
	Identity state.Identity `json:"user"`
}

// Event kinds emitted by the realtime feed. Every kind in this set
// counts toward the unread notification counter; the coordinator does
// not interpret payloads beyond that.
const (
	EventNewMessage       = "new-message"
	EventBookingRequested = "booking-requested"
	EventBookingConfirmed = "booking-confirmed"
	EventBookingDeclined  = "booking-declined"
	EventBookingCancelled = "booking-cancelled"
)

// Event is one inbound realtime event. Payload is passed through
// opaque: consumers that need details re-fetch from the service.
type Event struct {
	ID      string          `json:"event_id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EventOptions configures one long-poll of the event feed.
type EventOptions struct {
	// Cursor is the position token from the previous batch. Empty
	// means "anchor at the current head and return immediately".
	Cursor string
	// WaitMS is the server-side hold time in milliseconds. The server
	// returns early when events arrive. Only sent when SetWait is true
	// (zero is a meaningful value: return immediately).
	WaitMS  int
	SetWait bool
}

// EventBatch is one response from the event feed.
type EventBatch struct {
	Events     []Event `json:"events"`
	NextCursor string  `json:"next_cursor"`
}

// markReadRequest is the wire body for POST /v1/notifications/read.
type markReadRequest struct {
	All bool `json:"all"`
}
