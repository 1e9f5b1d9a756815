package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names consumed by Load. The credential names
// match what the remote services document, without an application
// prefix.
const (
	envCodaAPIKey    = "CODA_API_KEY"
	envCodaDocID     = "CODA_DOC_ID"
	envCodaTableID   = "CODA_TABLE_ID"
	envLLMProvider   = "LLM_PROVIDER"
	envGroqAPIKey    = "GROQ_API_KEY"
	envGeminiAPIKey  = "GEMINI_API_KEY"
	envLLMModel      = "LLM_MODEL"
	envPacingSeconds = "LLM_PACING_SECONDS"
	envOutputDir     = "OUTPUT_DIR"
	envDeckName      = "DECK_NAME"
	envLogLevel      = "LOG_LEVEL"
)

// Load reads configuration from the environment, optionally seeded from
// a .env file in the working directory (real environment variables take
// precedence). Returns a populated Config or an error if a required
// value is missing or invalid.
func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	v := viper.New()

	bindings := map[string]string{
		"coda.api_key":       envCodaAPIKey,
		"coda.doc_id":        envCodaDocID,
		"coda.table_id":      envCodaTableID,
		"llm.provider":       envLLMProvider,
		"llm.groq_api_key":   envGroqAPIKey,
		"llm.gemini_api_key": envGeminiAPIKey,
		"llm.model":          envLLMModel,
		"llm.pacing_seconds": envPacingSeconds,
		"output.dir":         envOutputDir,
		"output.deck_name":   envDeckName,
		"log_level":          envLogLevel,
	}
	for key, envVar := range bindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envVar, err)
		}
	}

	// Defaults also make every key visible to Unmarshal, so validation
	// (not viper) decides what counts as missing.
	v.SetDefault("coda.api_key", "")
	v.SetDefault("coda.doc_id", "")
	v.SetDefault("coda.table_id", "")
	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.groq_api_key", "")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.pacing_seconds", 2)
	v.SetDefault("output.dir", "anki_decks")
	v.SetDefault("output.deck_name", "Concurso")
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
