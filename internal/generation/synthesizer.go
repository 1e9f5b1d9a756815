package generation

import (
	"context"

	"github.com/mfbarros/errata/internal/domain"
)

// Synthesizer defines the interface for deriving flashcards from a
// study error's resolution text via a hosted language model.
type Synthesizer interface {
	// Synthesize sends the source text to the language model identified
	// by model and parses the structured response.
	//
	// The contract is strict: empty or whitespace-only source text fails
	// with ErrEmptySourceText before any network traffic; an empty or
	// malformed response body fails with ErrInvalidResponse rather than
	// succeeding with zero cards; a result may never carry more than
	// domain.MaxFlashcards items. There is no retry logic — a single
	// failed attempt is terminal for the call.
	Synthesize(ctx context.Context, sourceText, model string) (*domain.SynthesisResult, error)
}
