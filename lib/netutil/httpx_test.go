// Copyright 2026 The Wanderhome Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	var decoded struct {
		Name string `json:"name"`
	}
	err := DecodeResponse(strings.NewReader(`{"name":"wanderhome"}`), &decoded)
	if err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if decoded.Name != "wanderhome" {
		t.Errorf("name = %q, want wanderhome", decoded.Name)
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	var decoded map[string]any
	if err := DecodeResponse(strings.NewReader("not json"), &decoded); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestErrorBody(t *testing.T) {
	if got := ErrorBody(strings.NewReader("boom")); got != "boom" {
		t.Errorf("ErrorBody = %q, want boom", got)
	}
}
