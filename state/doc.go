// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package state holds the coordinator's application state and the
// Store that owns it.
//
// [AppState] aggregates the session (identity, credential, lifecycle
// status), the user-intent drafts (search criteria, a pending booking),
// the unread notification counter, the active account role, and the
// observable liveness of the realtime channel. The [Store] is the only
// mutable copy of that aggregate in the process: every other component
// reads snapshots and mutates through [Store.Update], the single
// serialized entry point. Inbound realtime events use the same entry
// point as synchronous operations; there is no second write path.
//
// Snapshots are deep copies. A consumer holding one can read it freely
// while the Store moves on; it can never observe a half-applied
// transition. [Store.Subscribe] delivers the post-mutation snapshot
// after every update with latest-wins semantics for slow consumers.
//
// This package depends on nothing outside the standard library.
package state
