// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/wanderhome/wanderhome/state"
)

func assertAuth(t *testing.T, request *http.Request, expectedCredential string) {
	t.Helper()
	auth := request.Header.Get("Authorization")
	expected := "Bearer " + expectedCredential
	if auth != expected {
		t.Errorf("unexpected auth header: got %q, want %q", auth, expected)
	}
}

func TestWhoAmI(t *testing.T) {
	t.Run("valid credential", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assertAuth(t, request, "token-1")
			if request.URL.Path != "/v1/auth/whoami" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			writeJSON(writer, whoAmIResponse{
				Identity: state.Identity{ID: "u1", Email: "a@x.com", Role: state.RoleTraveler, Verified: true},
			})
		}))

		identity, err := client.SessionFromCredential("token-1").WhoAmI(context.Background())
		if err != nil {
			t.Fatalf("WhoAmI failed: %v", err)
		}
		if identity.ID != "u1" || !identity.Verified {
			t.Errorf("unexpected identity: %+v", identity)
		}
	})

	t.Run("expired credential", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writeAPIError(writer, http.StatusUnauthorized, ErrCodeUnknownToken, "credential expired")
		}))

		_, err := client.SessionFromCredential("stale-token").WhoAmI(context.Background())
		if err == nil {
			t.Fatal("expected error for expired credential")
		}
		if !IsAPIError(err, ErrCodeUnknownToken) {
			t.Errorf("expected ERR_UNKNOWN_TOKEN, got: %v", err)
		}
	})
}

func TestEvents(t *testing.T) {
	t.Run("anchor poll", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assertAuth(t, request, "token-1")
			if request.URL.Path != "/v1/events" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			query := request.URL.Query()
			if query.Has("since") {
				t.Errorf("anchor poll must not send a cursor, got since=%q", query.Get("since"))
			}
			if query.Get("wait") != "0" {
				t.Errorf("wait = %q, want 0", query.Get("wait"))
			}
			writeJSON(writer, EventBatch{NextCursor: "c1"})
		}))

		batch, err := client.SessionFromCredential("token-1").Events(context.Background(), EventOptions{SetWait: true})
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		if batch.NextCursor != "c1" {
			t.Errorf("cursor = %q, want c1", batch.NextCursor)
		}
	})

	t.Run("long poll with cursor", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			query := request.URL.Query()
			if query.Get("since") != "c1" {
				t.Errorf("since = %q, want c1", query.Get("since"))
			}
			if query.Get("wait") != "30000" {
				t.Errorf("wait = %q, want 30000", query.Get("wait"))
			}
			writeJSON(writer, EventBatch{
				Events: []Event{
					{ID: "e1", Kind: EventNewMessage},
					{ID: "e2", Kind: EventBookingConfirmed},
				},
				NextCursor: "c2",
			})
		}))

		batch, err := client.SessionFromCredential("token-1").Events(context.Background(), EventOptions{
			Cursor:  "c1",
			WaitMS:  30000,
			SetWait: true,
		})
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		if len(batch.Events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(batch.Events))
		}
		if batch.Events[0].Kind != EventNewMessage {
			t.Errorf("first event kind = %q", batch.Events[0].Kind)
		}
	})
}

func TestMarkRead(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assertAuth(t, request, "token-1")
		if request.URL.Path != "/v1/notifications/read" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		if request.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", request.Method)
		}
		writeJSON(writer, map[string]any{})
	}))

	if err := client.SessionFromCredential("token-1").MarkRead(context.Background()); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
}
