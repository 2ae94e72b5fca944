// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package realtime owns the live event channel bound to an
// authenticated credential.
//
// The Manager enforces a hard single-writer discipline on the
// connection: Connect always closes any prior poll loop before
// starting a new one, so at most one loop is ever live. Inbound
// events are classified against a fixed kind set; each counted event
// increments the unread counter through the state store's single
// mutation entry point, the same path synchronous operations use.
//
// Waiting uses server-side long-polling: the service holds the
// request until events arrive, so there is no client-side polling
// interval. Transient failures retry on a bounded budget with
// clock-injected backoff; when the budget is exhausted the loop parks
// with the liveness flag false until the next Connect.
package realtime
