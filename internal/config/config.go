package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Coda     CodaConfig   `mapstructure:"coda"     validate:"required"`
	LLM      LLMConfig    `mapstructure:"llm"      validate:"required"`
	Output   OutputConfig `mapstructure:"output"   validate:"required"`
	LogLevel string       `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// CodaConfig contains the credentials and identifiers for the remote
// record store. All three are required; the client cannot address a
// table without them.
type CodaConfig struct {
	APIKey  string `mapstructure:"api_key"  validate:"required"`
	DocID   string `mapstructure:"doc_id"   validate:"required"`
	TableID string `mapstructure:"table_id" validate:"required"`
}

// LLMConfig contains all language model integration settings. The API
// key of the selected provider is required; the other provider's key
// may be absent.
type LLMConfig struct {
	Provider     string `mapstructure:"provider"       validate:"required,oneof=groq gemini"`
	GroqAPIKey   string `mapstructure:"groq_api_key"   validate:"required_if=Provider groq"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`

	// Model is the default model identifier, overridable per run from
	// the command line.
	Model string `mapstructure:"model" validate:"required"`

	// PacingSeconds is the fixed courtesy delay enforced before each
	// synthesis request. Zero disables pacing (used by tests).
	PacingSeconds int `mapstructure:"pacing_seconds" validate:"gte=0"`
}

// OutputConfig controls where and under which deck name the Anki
// package is written.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"       validate:"required"`
	DeckName string `mapstructure:"deck_name" validate:"required"`
}
