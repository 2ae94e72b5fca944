// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wanderhome/wanderhome/state"
)

// Session is a credential-bound booking-service session. It wraps a
// Client with the bearer credential for authenticated calls. Sessions
// are lightweight and cheap to create; the coordinator makes a fresh
// one for each credential it handles.
type Session struct {
	client     *Client
	credential string
}

// Credential returns the bearer credential this session carries.
func (s *Session) Credential() string {
	return s.credential
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport. Call after an Events error so the next poll opens a fresh
// TCP connection.
func (s *Session) CloseIdleConnections() {
	s.client.CloseIdleConnections()
}

// WhoAmI validates the credential and returns the identity it belongs
// to. This is the session-restore verification call: an invalid or
// expired credential fails with ERR_UNKNOWN_TOKEN.
func (s *Session) WhoAmI(ctx context.Context) (state.Identity, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/v1/auth/whoami", s.credential, nil)
	if err != nil {
		return state.Identity{}, fmt.Errorf("api: whoami failed: %w", err)
	}

	var response whoAmIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return state.Identity{}, fmt.Errorf("api: failed to parse whoami response: %w", err)
	}
	return response.Identity, nil
}

// Events performs one long-poll of the realtime event feed. With an
// empty cursor the server anchors at the current head and returns
// immediately; subsequent calls pass the previous NextCursor and a
// wait so the server holds the connection until events arrive.
func (s *Session) Events(ctx context.Context, options EventOptions) (*EventBatch, error) {
	query := url.Values{}
	if options.Cursor != "" {
		query.Set("since", options.Cursor)
	}
	if options.SetWait {
		query.Set("wait", strconv.Itoa(options.WaitMS))
	}

	body, err := s.client.doRequest(ctx, http.MethodGet, "/v1/events", s.credential, nil, query)
	if err != nil {
		return nil, fmt.Errorf("api: events poll failed: %w", err)
	}

	var batch EventBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("api: failed to parse events response: %w", err)
	}
	return &batch, nil
}

// MarkRead tells the service that all notifications have been read, so
// the server-side unread count matches the local one. Best effort: the
// coordinator zeroes the local counter regardless of this call's
// outcome.
func (s *Session) MarkRead(ctx context.Context) error {
	_, err := s.client.doRequest(ctx, http.MethodPost, "/v1/notifications/read", s.credential, markReadRequest{All: true})
	if err != nil {
		return fmt.Errorf("api: mark read failed: %w", err)
	}
	return nil
}
