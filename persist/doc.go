// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package persist stores the durable subset of coordinator state
// across process restarts.
//
// What persists is defined by [Projection], an explicit allow-list:
// identity, credential, the authenticated flag, both drafts, the
// active role, and the unread count. Everything else (transient
// status, last error, channel liveness) restarts fresh because it has
// no field to land in.
//
// The projection is serialized as one JSON blob under a single key in
// a SQLite table. [Store] handles load and save; [Mirror] subscribes
// to the live state store and rewrites the blob after every mutation,
// so no mutation path needs to remember to save. A blob that fails to
// decode is logged and discarded, which makes corruption equivalent to
// a first run rather than a startup failure.
package persist
