package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimal environment for a successful Load
// with the default (groq) provider.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CODA_API_KEY", "coda-key")
	t.Setenv("CODA_DOC_ID", "doc-123")
	t.Setenv("CODA_TABLE_ID", "grid-456")
	t.Setenv("GROQ_API_KEY", "groq-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "coda-key", cfg.Coda.APIKey)
	assert.Equal(t, "doc-123", cfg.Coda.DocID)
	assert.Equal(t, "grid-456", cfg.Coda.TableID)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.LLM.PacingSeconds)
	assert.Equal(t, "anki_decks", cfg.Output.Dir)
	assert.Equal(t, "Concurso", cfg.Output.DeckName)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_MODEL", "llama3-70b-8192")
	t.Setenv("LLM_PACING_SECONDS", "0")
	t.Setenv("OUTPUT_DIR", "/tmp/decks")
	t.Setenv("DECK_NAME", "Revisão")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "llama3-70b-8192", cfg.LLM.Model)
	assert.Equal(t, 0, cfg.LLM.PacingSeconds)
	assert.Equal(t, "/tmp/decks", cfg.Output.Dir)
	assert.Equal(t, "Revisão", cfg.Output.DeckName)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingRequired(t *testing.T) {
	cases := []struct {
		name  string
		unset string
	}{
		{"missing coda api key", "CODA_API_KEY"},
		{"missing doc id", "CODA_DOC_ID"},
		{"missing table id", "CODA_TABLE_ID"},
		{"missing groq key", "GROQ_API_KEY"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.unset, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadGeminiProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "gemini")

	// Gemini selected but no key: invalid.
	_, err := Load()
	require.Error(t, err)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-key", cfg.LLM.GeminiAPIKey)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")

	_, err := Load()
	assert.Error(t, err)
}
