// Package domain contains the core entities of the flashcard pipeline:
// study-error records pulled from the remote table, the flashcards
// synthesized from them, and the deck card entries written to the
// Anki package. It has no dependencies on transport or storage code.
package domain
