// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides the Wanderhome-standard SQLite
// connection pool.
//
// The persist package stores the coordinator's durable state snapshot
// through this pool. It wraps zombiezen.com/go/sqlite with defaults
// suited to a client-resident store: WAL journal mode, NORMAL
// synchronous (snapshots survive process crashes; the source of truth
// for anything the blob loses is the booking service), busy timeout
// for write contention, and a deliberately small pool.
//
// Callers [Pool.Take] a connection, do their work, and [Pool.Put] it
// back. Connections are not safe for concurrent use.
package sqlitepool
