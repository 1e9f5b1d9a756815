package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
	"github.com/mfbarros/errata/internal/generation"
)

const (
	// maxOutputTokens is the completion token budget per request,
	// matching the Groq backend.
	maxOutputTokens = 4000

	// temperature keeps some variety while staying precise.
	temperature = 0.2
)

// Synthesizer implements the generation.Synthesizer interface using
// the Gemini API.
type Synthesizer struct {
	client *genai.Client
	pacing time.Duration
	logger *slog.Logger
}

// NewSynthesizer creates a Gemini-backed synthesizer with the provided
// configuration. Returns generation.ErrInvalidConfig when the API key
// is missing or the client cannot be constructed. If logger is nil,
// the default logger is used.
func NewSynthesizer(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Synthesizer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Synthesizer{
		client: client,
		pacing: time.Duration(cfg.PacingSeconds) * time.Second,
		logger: logger.With(slog.String("component", "gemini_synthesizer")),
	}, nil
}

// Ensure Synthesizer implements the generation.Synthesizer interface
var _ generation.Synthesizer = (*Synthesizer)(nil)

// Synthesize implements generation.Synthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, sourceText, model string) (*domain.SynthesisResult, error) {
	if strings.TrimSpace(sourceText) == "" {
		return nil, generation.ErrEmptySourceText
	}

	s.logger.InfoContext(ctx, "Generating flashcards", "model", model)

	if s.pacing > 0 {
		select {
		case <-time.After(s.pacing):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrRequestFailed, ctx.Err())
		}
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(generation.SystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   maxOutputTokens,
	}

	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(sourceText), genConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrRequestFailed, err)
	}

	content := resp.Text()
	if content == "" {
		return nil, fmt.Errorf("%w: empty completion content", generation.ErrInvalidResponse)
	}

	s.logger.DebugContext(ctx, "Received completion", "content_length", len(content))

	var result domain.SynthesisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse flashcard JSON: %v", generation.ErrInvalidResponse, err)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	s.logger.InfoContext(ctx, "Flashcards generated",
		"count", len(result.Flashcards),
		"has_summary", result.Summary != "")
	return &result, nil
}
