// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package coordinator implements the authentication lifecycle and the
// draft operations on top of the state store.
//
// Every operation follows the same shape: mutate the store atomically,
// then drive side effects (the realtime channel, the booking service)
// from the outcome. Lifecycle calls that cross the network carry a
// generation token captured at their start; Logout bumps the
// generation, so a login response that resolves after a logout finds
// its generation stale and applies nothing. That closes the race where
// a slow login success would silently resurrect a logged-out session.
package coordinator
