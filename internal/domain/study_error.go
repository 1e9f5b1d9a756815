package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// MinResolutionLen is the minimum length of a record's resolution text
// for it to be worth sending to the language model. Shorter resolutions
// are skipped by the pipeline rather than treated as failures.
const MinResolutionLen = 20

// StudyError-specific validation errors
var (
	// ErrStudyErrorIDEmpty is returned when a record's ID is empty.
	ErrStudyErrorIDEmpty = errors.New("study error ID cannot be empty")
)

// StudyError represents one logged exam mistake with its explanation,
// stored as a row in the remote table. Instances are only ever built by
// the record store client when deserializing a fetch result; they are
// never constructed from scratch locally.
type StudyError struct {
	// ID is the row identifier assigned by the remote service. Immutable.
	ID string `json:"id"`

	// Subject is the topic the mistake relates to ("Assunto").
	Subject string `json:"subject"`

	// Exam is the exam or context label ("Concurso").
	Exam string `json:"exam"`

	// Discipline is the category label used to group decks ("Disciplina").
	Discipline string `json:"discipline"`

	// Resolution is the free-text explanation of the mistake
	// ("Resolução"). It is the input handed to the language model.
	Resolution string `json:"resolution"`

	// FlashcardCreated reports whether flashcards were already generated
	// for this record ("Flashcard Criado").
	FlashcardCreated bool `json:"flashcard_created"`

	// ErrorType, Task and Activity are optional classification labels.
	ErrorType string `json:"error_type,omitempty"`
	Task      string `json:"task,omitempty"`
	Activity  string `json:"activity,omitempty"`

	// CreatedAt is the row creation timestamp ("Criado em"). Nil when the
	// remote value was absent or unparseable.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Validate checks that the record carries the fields the pipeline
// depends on. A record sourced from a fetch result always has an ID.
func (e *StudyError) Validate() error {
	if e.ID == "" {
		return ErrStudyErrorIDEmpty
	}
	return nil
}

// HasUsableResolution reports whether the resolution text is long
// enough to synthesize flashcards from.
func (e *StudyError) HasUsableResolution() bool {
	return utf8.RuneCountInString(e.Resolution) >= MinResolutionLen
}
