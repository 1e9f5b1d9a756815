package domain

// Default labels applied when packaging a card whose optional fields
// are absent. They match the labels the decks have always used.
const (
	DefaultTopic  = "Geral"
	DefaultSource = "Gerado por IA"
)

// DeckCard is a flashcard enriched with the grouping and provenance
// context of its originating study error, in the shape the deck
// packager writes out. Derived 1:1 from a Flashcard.
type DeckCard struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Topic      string `json:"topic,omitempty"`
	Discipline string `json:"discipline"`
	SourceID   string `json:"source_id,omitempty"`
}

// TopicOrDefault returns the card's topic, falling back to DefaultTopic.
func (c *DeckCard) TopicOrDefault() string {
	if c.Topic == "" {
		return DefaultTopic
	}
	return c.Topic
}

// SourceOrDefault returns the card's source reference, falling back to
// DefaultSource.
func (c *DeckCard) SourceOrDefault() string {
	if c.SourceID == "" {
		return DefaultSource
	}
	return c.SourceID
}
