package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mfbarros/errata/internal/domain"
	"github.com/mfbarros/errata/internal/generation"
	"github.com/mfbarros/errata/internal/platform/anki"
)

// Common errors
var (
	ErrNilStore       = errors.New("record store cannot be nil")
	ErrNilSynthesizer = errors.New("synthesizer cannot be nil")
	ErrNilPackager    = errors.New("packager cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")

	// ErrRecordNotFound is returned by single-record mode when the
	// requested row does not exist (or could not be fetched).
	ErrRecordNotFound = errors.New("record not found")
)

// RecordStore defines the store operations the pipeline depends on.
// The per-method failure contracts are asymmetric on purpose: the two
// listing methods propagate errors so batch runs can abort early, the
// two single-row methods soft-fail so partial progress survives.
type RecordStore interface {
	// FetchPending returns up to limit records not yet flashcarded.
	FetchPending(ctx context.Context, limit int) ([]domain.StudyError, error)

	// FetchByID returns one record, or reports absence on any failure.
	FetchByID(ctx context.Context, id string) (*domain.StudyError, bool)

	// FetchByDiscipline returns up to limit records of one discipline.
	FetchByDiscipline(ctx context.Context, discipline string, limit int) ([]domain.StudyError, error)

	// MarkDone flags one record as flashcarded, reporting success.
	MarkDone(ctx context.Context, id string) bool
}

// Packager defines the deck packaging operation the pipeline depends on.
type Packager interface {
	// BuildAndSave bundles the cards into one package file and returns
	// its path.
	BuildAndSave(ctx context.Context, cards []domain.DeckCard) (string, error)
}

// ConfirmFunc asks the operator whether a record should be marked as
// done. Used only by single-record mode.
type ConfirmFunc func(record *domain.StudyError) bool

// Pipeline orchestrates the three run modes. It owns all in-memory
// collections for the duration of one run; nothing persists in process
// state between runs.
type Pipeline struct {
	store    RecordStore
	synth    generation.Synthesizer
	packager Packager
	logger   *slog.Logger
	model    string
}

// New creates a pipeline for one run. The model identifier is fixed
// per run. Returns an error when any dependency is nil.
func New(store RecordStore, synth generation.Synthesizer, packager Packager, model string, logger *slog.Logger) (*Pipeline, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if synth == nil {
		return nil, ErrNilSynthesizer
	}
	if packager == nil {
		return nil, ErrNilPackager
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Pipeline{
		store:    store,
		synth:    synth,
		packager: packager,
		logger:   logger.With("component", "pipeline", "run_id", uuid.New().String()),
		model:    model,
	}, nil
}

// synthesizeRecord runs one record through the synthesizer and maps
// the result to deck cards. The second return reports a skip: the
// record had nothing to process, which is not a failure.
func (p *Pipeline) synthesizeRecord(ctx context.Context, record *domain.StudyError) (*GeneratedRecord, bool, error) {
	logger := p.logger.With("record_id", record.ID)
	logger.InfoContext(ctx, "Processing study error", "subject", record.Subject)

	if !record.HasUsableResolution() {
		logger.WarnContext(ctx, "Resolution too short or empty, skipping record")
		return nil, true, nil
	}

	result, err := p.synth.Synthesize(ctx, record.Resolution, p.model)
	if err != nil {
		return nil, false, fmt.Errorf("failed to synthesize flashcards for record %s: %w", record.ID, err)
	}

	generated := &GeneratedRecord{
		RecordID:   record.ID,
		Subject:    record.Subject,
		Discipline: record.Discipline,
		Flashcards: result.Flashcards,
		Summary:    result.Summary,
		Cards:      anki.CardsFromFlashcards(result.Flashcards, record.Discipline, record.Subject, record.ID),
	}

	logger.InfoContext(ctx, "Flashcards synthesized", "count", len(result.Flashcards))
	return generated, false, nil
}

// ProcessPending fetches up to limit pending records, synthesizes each
// one and bundles everything that succeeded into a single package.
// Records whose synthesis failed are logged and skipped without
// aborting the batch; records that made it through are marked done in
// the store after the package is written, so a packaging failure never
// leaves half-flagged rows behind.
func (p *Pipeline) ProcessPending(ctx context.Context, limit int) (*Summary, error) {
	p.logger.InfoContext(ctx, "Fetching pending study errors", "limit", limit)

	records, err := p.store.FetchPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending records: %w", err)
	}

	summary := &Summary{Fetched: len(records)}
	if len(records) == 0 {
		p.logger.InfoContext(ctx, "No pending study errors to process")
		return summary, nil
	}

	var allCards []domain.DeckCard
	var synthesized []string

	for i := range records {
		record := &records[i]

		generated, skipped, err := p.synthesizeRecord(ctx, record)
		if skipped {
			summary.Skipped++
			continue
		}
		if err != nil {
			p.logger.ErrorContext(ctx, "Failed to process record",
				"record_id", record.ID,
				"error", err)
			summary.Failed++
			continue
		}

		allCards = append(allCards, generated.Cards...)
		synthesized = append(synthesized, record.ID)
		summary.Generated = append(summary.Generated, *generated)
		summary.Processed++
	}

	if len(allCards) == 0 {
		p.logger.WarnContext(ctx, "No flashcards were generated")
		return summary, nil
	}

	path, err := p.packager.BuildAndSave(ctx, allCards)
	if err != nil {
		return summary, fmt.Errorf("failed to build package: %w", err)
	}
	summary.PackagePaths = append(summary.PackagePaths, path)

	for _, id := range synthesized {
		if p.store.MarkDone(ctx, id) {
			summary.MarkedDone++
		}
	}

	return summary, nil
}

// ProcessDiscipline fetches up to limit records of one discipline and
// processes each independently: one package per record, no cross-record
// accumulation and no mark-done. Synthesis failures are logged per
// record; packaging failures abort the run.
func (p *Pipeline) ProcessDiscipline(ctx context.Context, discipline string, limit int) (*Summary, error) {
	p.logger.InfoContext(ctx, "Fetching study errors by discipline",
		"discipline", discipline,
		"limit", limit)

	records, err := p.store.FetchByDiscipline(ctx, discipline, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records for discipline %q: %w", discipline, err)
	}

	summary := &Summary{Fetched: len(records)}
	if len(records) == 0 {
		p.logger.InfoContext(ctx, "No study errors recorded for discipline", "discipline", discipline)
		return summary, nil
	}

	for i := range records {
		record := &records[i]

		generated, skipped, err := p.synthesizeRecord(ctx, record)
		if skipped {
			summary.Skipped++
			continue
		}
		if err != nil {
			p.logger.ErrorContext(ctx, "Failed to process record",
				"record_id", record.ID,
				"error", err)
			summary.Failed++
			continue
		}

		path, err := p.packager.BuildAndSave(ctx, generated.Cards)
		if err != nil {
			return summary, fmt.Errorf("failed to build package for record %s: %w", record.ID, err)
		}

		summary.PackagePaths = append(summary.PackagePaths, path)
		summary.Generated = append(summary.Generated, *generated)
		summary.Processed++
		p.logger.InfoContext(ctx, "Flashcards created for record",
			"record_id", record.ID,
			"package", path)
	}

	return summary, nil
}

// ProcessRecord fetches exactly one record by id and processes it as a
// single-record package. Absence of the record is a hard error, and so
// is a synthesis failure: single-record mode surfaces problems to the
// operator instead of continuing. The record is marked done only when
// confirm explicitly approves it.
func (p *Pipeline) ProcessRecord(ctx context.Context, id string, confirm ConfirmFunc) (*Summary, error) {
	p.logger.InfoContext(ctx, "Fetching study error by ID", "record_id", id)

	record, ok := p.store.FetchByID(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	summary := &Summary{Fetched: 1}

	generated, skipped, err := p.synthesizeRecord(ctx, record)
	if skipped {
		summary.Skipped++
		return summary, nil
	}
	if err != nil {
		summary.Failed++
		return summary, err
	}

	path, err := p.packager.BuildAndSave(ctx, generated.Cards)
	if err != nil {
		return summary, fmt.Errorf("failed to build package for record %s: %w", record.ID, err)
	}

	summary.PackagePaths = append(summary.PackagePaths, path)
	summary.Generated = append(summary.Generated, *generated)
	summary.Processed++

	if confirm != nil && confirm(record) {
		if p.store.MarkDone(ctx, record.ID) {
			summary.MarkedDone++
		}
	}

	return summary, nil
}
