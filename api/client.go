// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/wanderhome/wanderhome/lib/netutil"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the booking service
	// (e.g., "https://api.wanderhome.example").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used. Request timeouts belong to this client, not to the
	// coordinator.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is an unauthenticated booking-service client. It holds the
// base URL and HTTP transport, shared across Sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new unauthenticated booking-service client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// CloseIdleConnections closes idle HTTP connections in the underlying
// transport's connection pool. Call after a network disruption to force
// subsequent requests onto fresh TCP connections instead of a poisoned
// pooled one.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Login authenticates with email and password. On success the returned
// AuthResult carries the identity and the bearer credential.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" {
		return nil, fmt.Errorf("api: email is required for login")
	}
	if password == "" {
		return nil, fmt.Errorf("api: password is required for login")
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("api: login failed: %w", err)
	}

	var result AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("api: failed to parse login response: %w", err)
	}

	c.logger.Info("logged in to booking service",
		"user_id", result.Identity.ID,
		"role", result.Identity.Role,
	)
	return &result, nil
}

// Register creates a new account. Identical contract to Login except
// the remote call creates the identity instead of verifying one.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*AuthResult, error) {
	if request.Email == "" {
		return nil, fmt.Errorf("api: email is required for registration")
	}
	if request.Password == "" {
		return nil, fmt.Errorf("api: password is required for registration")
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/register", "", request)
	if err != nil {
		return nil, fmt.Errorf("api: registration failed: %w", err)
	}

	var result AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("api: failed to parse register response: %w", err)
	}

	c.logger.Info("registered booking-service account",
		"user_id", result.Identity.ID,
		"role", result.Identity.Role,
	)
	return &result, nil
}

// SessionFromCredential creates a Session bound to an existing bearer
// credential. This does NOT validate the credential; callers that need
// validation use Session.WhoAmI (the session-restore path does).
func (c *Client) SessionFromCredential(credential string) *Session {
	return &Session{client: c, credential: credential}
}

// doRequest performs an HTTP request to the booking service and
// returns the response body. On 2xx, returns the body. On 4xx/5xx,
// returns a *APIError. credential may be empty for unauthenticated
// endpoints. query may be nil.
func (c *Client) doRequest(ctx context.Context, method, path, credential string, requestBody any, query ...url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 && query[0] != nil {
		requestURL += "?" + query[0].Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		request.Header.Set("Authorization", "Bearer "+credential)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	// All booking-service error responses use the same JSON shape.
	var apiErr APIError
	if jsonErr := json.Unmarshal(responseBody, &apiErr); jsonErr != nil || apiErr.Code == "" {
		// Non-JSON error body. Should not happen with a well-behaved
		// server, but fail loud with the raw body.
		return nil, fmt.Errorf("api: unexpected %d response from %s %s: %s",
			response.StatusCode, method, path, string(responseBody))
	}
	apiErr.StatusCode = response.StatusCode

	return responseBody, &apiErr
}
