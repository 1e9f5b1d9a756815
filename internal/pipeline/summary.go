package pipeline

import (
	"fmt"
	"strings"

	"github.com/mfbarros/errata/internal/domain"
)

// GeneratedRecord holds everything one record produced, kept so the
// CLI can show the operator what went into the package.
type GeneratedRecord struct {
	RecordID   string
	Subject    string
	Discipline string
	Flashcards []domain.Flashcard
	Summary    string
	Cards      []domain.DeckCard
}

// Summary aggregates the outcome of one run.
type Summary struct {
	// Fetched is the number of records retrieved from the store.
	Fetched int

	// Processed is the number of records that produced flashcards.
	Processed int

	// Skipped is the number of records with nothing to process.
	Skipped int

	// Failed is the number of records whose synthesis failed.
	Failed int

	// MarkedDone is the number of records flagged in the store.
	MarkedDone int

	// PackagePaths are the package files written by the run.
	PackagePaths []string

	// Generated is the per-record output, in processing order.
	Generated []GeneratedRecord
}

// Render formats the run outcome for the operator, including every
// generated flashcard.
func (s *Summary) Render() string {
	var b strings.Builder

	for _, record := range s.Generated {
		fmt.Fprintf(&b, "\n%s\n", strings.Repeat("=", 50))
		fmt.Fprintf(&b, "Flashcards gerados para: %s\n", record.Subject)
		fmt.Fprintf(&b, "Disciplina: %s (registro %s)\n", record.Discipline, record.RecordID)
		fmt.Fprintf(&b, "%s\n", strings.Repeat("=", 50))

		if record.Summary != "" {
			fmt.Fprintf(&b, "\nResumo do conteúdo:\n%s\n", record.Summary)
		}

		fmt.Fprintf(&b, "\nTotal de flashcards: %d\n", len(record.Flashcards))
		for i, card := range record.Flashcards {
			topic := ""
			if card.Topic != "" {
				topic = fmt.Sprintf(" [%s]", card.Topic)
			}
			fmt.Fprintf(&b, "%d.%s Pergunta: %s\n", i+1, topic, card.Question)
			fmt.Fprintf(&b, "   Resposta: %s\n", card.Answer)
		}
	}

	fmt.Fprintf(&b, "\nRegistros: %d buscados, %d processados, %d ignorados, %d com falha\n",
		s.Fetched, s.Processed, s.Skipped, s.Failed)
	if s.MarkedDone > 0 {
		fmt.Fprintf(&b, "Marcados como concluídos: %d\n", s.MarkedDone)
	}
	for _, path := range s.PackagePaths {
		fmt.Fprintf(&b, "Baralho salvo em: %s\n", path)
	}

	return b.String()
}
