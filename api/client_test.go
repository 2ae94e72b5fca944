// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wanderhome/wanderhome/state"
)

// newTestClient creates a Client pointing at a test server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func writeJSON(writer http.ResponseWriter, value any) {
	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(value)
}

func writeAPIError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(APIError{Code: code, Message: message})
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("expected error for missing BaseURL")
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/v1/auth/login" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			if request.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", request.Method)
			}

			var body loginRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode login request: %v", err)
			}
			if body.Email != "a@x.com" {
				t.Errorf("unexpected email: %s", body.Email)
			}
			if body.Password != "p1" {
				t.Errorf("unexpected password: %s", body.Password)
			}

			writeJSON(writer, AuthResult{
				Identity:   state.Identity{ID: "u1", Email: "a@x.com", Role: state.RoleTraveler},
				Credential: "token-1",
			})
		}))

		result, err := client.Login(context.Background(), "a@x.com", "p1")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.Credential != "token-1" {
			t.Errorf("credential = %q, want token-1", result.Credential)
		}
		if result.Identity.Email != "a@x.com" {
			t.Errorf("identity email = %q, want a@x.com", result.Identity.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writeAPIError(writer, http.StatusForbidden, ErrCodeForbidden, "invalid email or password")
		}))

		_, err := client.Login(context.Background(), "nobody@x.com", "wrong")
		if err == nil {
			t.Fatal("expected error for wrong password")
		}
		if !IsAPIError(err, ErrCodeForbidden) {
			t.Errorf("expected ERR_FORBIDDEN, got: %v", err)
		}
	})

	t.Run("empty email rejected locally", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("server should not be called")
		}))

		if _, err := client.Login(context.Background(), "", "p1"); err == nil {
			t.Fatal("expected error for empty email")
		}
	})
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/v1/auth/register" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}

			var body RegisterRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode register request: %v", err)
			}
			if body.Role != state.RoleHost {
				t.Errorf("unexpected role: %s", body.Role)
			}

			writeJSON(writer, AuthResult{
				Identity:   state.Identity{ID: "u2", Email: body.Email, DisplayName: body.DisplayName, Role: body.Role},
				Credential: "token-2",
			})
		}))

		result, err := client.Register(context.Background(), RegisterRequest{
			Email:       "host@x.com",
			Password:    "p2",
			DisplayName: "Hannah",
			Role:        state.RoleHost,
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if result.Identity.DisplayName != "Hannah" {
			t.Errorf("display name = %q, want Hannah", result.Identity.DisplayName)
		}
	})

	t.Run("email already in use", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writeAPIError(writer, http.StatusConflict, ErrCodeEmailInUse, "email already registered")
		}))

		_, err := client.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "p1"})
		if err == nil {
			t.Fatal("expected error for duplicate email")
		}
		if !IsAPIError(err, ErrCodeEmailInUse) {
			t.Errorf("expected ERR_EMAIL_IN_USE, got: %v", err)
		}
	})

	t.Run("incomplete input rejected locally", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("server should not be called")
		}))

		if _, err := client.Register(context.Background(), RegisterRequest{Email: "a@x.com"}); err == nil {
			t.Fatal("expected error for missing password")
		}
	})
}

func TestNonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		http.Error(writer, "gateway exploded", http.StatusBadGateway)
	}))

	_, err := client.Login(context.Background(), "a@x.com", "p1")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("non-JSON body must not produce a structured APIError: %v", apiErr)
	}
	if !strings.Contains(err.Error(), "gateway exploded") {
		t.Errorf("error should carry the raw body, got: %v", err)
	}
}
