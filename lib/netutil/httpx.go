// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response-body helpers.
//
// All JSON API response reads go through these helpers so that a
// misbehaving server cannot make the client allocate unbounded memory.
// The limit is generous; legitimate booking-service responses are
// orders of magnitude smaller.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// MaxResponseSize bounds JSON API response body reads: 8 MB. Booking
// search pages, event batches, and auth responses are all far below
// this; the cap exists only to stop a pathological response from
// exhausting memory on a client device.
const MaxResponseSize int64 = 8 << 20

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a JSON API response body (up to MaxResponseSize
// bytes) and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads an HTTP error response body and returns it as a
// string for diagnostic error messages. Read errors are ignored: a
// partial or empty body is still useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxResponseSize))
	return string(data)
}
