package domain

import "errors"

// MaxFlashcards is the hard cap on flashcards per synthesis call. The
// language model is instructed to stay below it; a response exceeding
// it is a contract violation, not something to truncate silently.
const MaxFlashcards = 5

// Synthesis-specific validation errors
var (
	// ErrTooManyFlashcards is returned when a synthesis result carries
	// more than MaxFlashcards items.
	ErrTooManyFlashcards = errors.New("synthesis result exceeds the flashcard cap")

	// ErrFlashcardQuestionEmpty is returned when a flashcard has no question.
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrFlashcardAnswerEmpty is returned when a flashcard has no answer.
	ErrFlashcardAnswerEmpty = errors.New("flashcard answer cannot be empty")
)

// Flashcard is one question/answer pair produced by the synthesizer.
// It is transient: folded into DeckCard entries and never persisted on
// its own.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Topic    string `json:"topic,omitempty"`
}

// SynthesisResult is the typed outcome of one synthesis call: an
// ordered list of flashcards (possibly empty, never more than
// MaxFlashcards) plus an optional free-text summary.
type SynthesisResult struct {
	Flashcards []Flashcard `json:"flashcards"`
	Summary    string      `json:"summary,omitempty"`
}

// Validate checks the result against the synthesis contract.
func (r *SynthesisResult) Validate() error {
	if len(r.Flashcards) > MaxFlashcards {
		return ErrTooManyFlashcards
	}

	for _, card := range r.Flashcards {
		if card.Question == "" {
			return ErrFlashcardQuestionEmpty
		}
		if card.Answer == "" {
			return ErrFlashcardAnswerEmpty
		}
	}

	return nil
}
