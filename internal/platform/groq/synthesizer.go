package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
	"github.com/mfbarros/errata/internal/generation"
	"github.com/mfbarros/errata/internal/redact"
)

const (
	// DefaultBaseURL is the OpenAI-compatible API root of the Groq
	// platform.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// maxTokens is the completion token budget per request.
	maxTokens = 4000

	// temperature keeps some variety while staying precise.
	temperature = 0.2

	// requestTimeout bounds one round trip, including model latency.
	requestTimeout = 60 * time.Second
)

// Synthesizer implements the generation.Synthesizer interface using the
// Groq chat-completions API.
type Synthesizer struct {
	apiKey     string
	baseURL    string
	pacing     time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSynthesizer creates a Groq-backed synthesizer from the application
// configuration. Returns generation.ErrInvalidConfig when the API key
// is missing. If logger is nil, the default logger is used.
func NewSynthesizer(cfg config.LLMConfig, logger *slog.Logger) (*Synthesizer, error) {
	return NewSynthesizerWithBaseURL(cfg, DefaultBaseURL, logger)
}

// NewSynthesizerWithBaseURL creates a synthesizer pointed at a custom
// API root. Tests use this to target a local server.
func NewSynthesizerWithBaseURL(cfg config.LLMConfig, baseURL string, logger *slog.Logger) (*Synthesizer, error) {
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("%w: groq API key cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Synthesizer{
		apiKey:  cfg.GroqAPIKey,
		baseURL: baseURL,
		pacing:  time.Duration(cfg.PacingSeconds) * time.Second,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger.With(slog.String("component", "groq_synthesizer")),
	}, nil
}

// Ensure Synthesizer implements the generation.Synthesizer interface
var _ generation.Synthesizer = (*Synthesizer)(nil)

// chatMessage is one message of an OpenAI-compatible chat request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request payload of the chat-completions endpoint.
type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Stream bool `json:"stream"`
}

// chatResponse is the subset of the chat-completions response the
// synthesizer consumes.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Synthesize implements generation.Synthesizer.
//
// The fixed pacing delay runs before dispatch as rate-limit courtesy to
// the remote service; it is a plain blocking wait, interrupted only by
// context cancellation.
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

	reqPayload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: generation.SystemPrompt},
			{Role: "user", Content: sourceText},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	reqPayload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", generation.ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", generation.ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.ErrorContext(ctx, "Groq API returned an error status",
			"status", resp.StatusCode,
			"body", redact.String(string(respBody)))
		return nil, fmt.Errorf("%w: status %d", generation.ErrRequestFailed, resp.StatusCode)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("%w: failed to decode completion: %v", generation.ErrInvalidResponse, err)
	}

	if completion.Error != nil {
		return nil, fmt.Errorf("%w: %s", generation.ErrInvalidResponse, completion.Error.Message)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion content", generation.ErrInvalidResponse)
	}

	content := completion.Choices[0].Message.Content
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
