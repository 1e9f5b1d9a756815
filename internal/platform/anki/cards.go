package anki

import "github.com/mfbarros/errata/internal/domain"

// CardsFromFlashcards converts synthesized flashcards into deck card
// entries, attaching the discipline, topic and source reference of the
// originating study error. Pure 1:1 mapping, order preserved.
func CardsFromFlashcards(items []domain.Flashcard, discipline, topic, sourceID string) []domain.DeckCard {
	cards := make([]domain.DeckCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, domain.DeckCard{
			Question:   item.Question,
			Answer:     item.Answer,
			Topic:      topic,
			Discipline: discipline,
			SourceID:   sourceID,
		})
	}
	return cards
}

// DisciplineGroup is one discipline's cards in original order.
type DisciplineGroup struct {
	Discipline string
	Cards      []domain.DeckCard
}

// GroupByDiscipline groups cards by their discipline label. Grouping is
// stable: disciplines appear in first-seen order and each group keeps
// its cards in original order.
func GroupByDiscipline(cards []domain.DeckCard) []DisciplineGroup {
	index := make(map[string]int)
	groups := make([]DisciplineGroup, 0)

	for _, card := range cards {
		i, seen := index[card.Discipline]
		if !seen {
			i = len(groups)
			index[card.Discipline] = i
			groups = append(groups, DisciplineGroup{Discipline: card.Discipline})
		}
		groups[i].Cards = append(groups[i].Cards, card)
	}

	return groups
}
