// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package api wraps the Wanderhome booking-service HTTP API.
//
// The package provides two core types. [Client] is an unauthenticated
// client that handles login and registration, returning an
// [AuthResult] with the identity and the opaque bearer credential.
// Client holds the base URL and HTTP transport, shared across all
// Sessions derived from it.
//
// [Session] binds a Client to a credential for authenticated
// operations: identity verification ([Session.WhoAmI], used by session
// restore to validate a stored credential), the long-poll event feed
// ([Session.Events], consumed by the realtime channel manager), and
// server-side unread reconciliation ([Session.MarkRead]). Sessions are
// lightweight (a pointer to the parent Client plus the credential
// string) and cheap to create.
//
// All API errors are returned as [*APIError] with the service error
// code (ERR_FORBIDDEN, ERR_UNKNOWN_TOKEN, ...) and HTTP status code.
// [IsAPIError] tests for a specific code. Remote failures never panic;
// callers convert them into coordinator state.
package api
