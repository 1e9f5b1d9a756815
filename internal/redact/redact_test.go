package redact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRedactsBearerTokens(t *testing.T) {
	t.Parallel()

	in := `{"message":"invalid header: Bearer sk_live_abcdef123456"}`
	out := String(in)

	assert.NotContains(t, out, "sk_live_abcdef123456")
	assert.Contains(t, out, RedactionPlaceholder)
}

func TestStringRedactsKeyAssignments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"json field", `{"api_key":"gsk_0123456789abcdef"}`},
		{"query string", "retry?token=abcdefgh12345678"},
		{"plain text", "secret: super-secret-value-1"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := String(tc.input)
			assert.Contains(t, out, RedactedKeyPlaceholder)
		})
	}
}

func TestStringLeavesOrdinaryTextAlone(t *testing.T) {
	t.Parallel()

	in := `{"statusCode":404,"message":"Row not found"}`
	assert.Equal(t, in, String(in))
}

func TestError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Error(nil))

	err := errors.New("request failed: Bearer abcdefgh12345678 rejected")
	out := Error(err)
	assert.NotContains(t, out, "abcdefgh12345678")
}
