// Copyright 2024 - 2026, the Lokal contributors
// SPDX-License-Identifier: AGPL-3.0-only

package localize

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPrintfFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"text placeholder", "Hello, %@", "Hello, %v"},
		{"double placeholder", "Price: %lf", "Price: %f"},
		{"integer verb passthrough", "Count: %d", "Count: %d"},
		{"escaped percent", "100%% sure", "100%% sure"},
		{"escaped percent before placeholder", "50%%%@", "50%%%v"},
		{"bare l without f", "%lx", "%lx"},
		{"trailing percent", "oops%", "oops%"},
		{"mixed", "%@ has %d of %lf", "%v has %d of %f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, printfFormat(tt.in))
		})
	}
}

// TestSubstituteRepeatedMarker verifies that every occurrence of a repeated
// marker is replaced and each receives the same value.
func TestSubstituteRepeatedMarker(t *testing.T) {
	t.Parallel()

	l := New(nil, Options{Logger: zerolog.Ctx(t.Context())})

	got := l.substitute("@(a) and @(a)", map[string]Pairing{"a": Text("x")})
	assert.Equal(t, "x and x", got)
}

func TestSubstituteNoMarkers(t *testing.T) {
	t.Parallel()

	l := New(nil, Options{Logger: zerolog.Ctx(t.Context())})

	assert.Equal(t, "plain", l.substitute("plain", map[string]Pairing{"a": Text("x")}))
}
