package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/generation"
)

func TestNewSynthesizerRequiresAPIKey(t *testing.T) {
	t.Parallel()

	cfg := config.LLMConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
	}

	_, err := NewSynthesizer(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
