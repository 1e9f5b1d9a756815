package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupReturnsLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		logger := Setup(level)
		assert.NotNil(t, logger, "Setup(%q) returned nil", level)
	}
}

func TestSetupFallsBackOnInvalidLevel(t *testing.T) {
	logger := Setup("verbose")
	assert.NotNil(t, logger)

	// The fallback logger must be enabled at info and silent at debug.
	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.False(t, logger.Enabled(ctx, slog.LevelDebug))
}
