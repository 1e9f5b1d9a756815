// Package anki converts synthesized flashcards into an importable Anki
// package. Cards are grouped into one sub-deck per discipline and all
// sub-decks are serialized into a single .apkg file: a zip archive
// holding an Anki 2 collection database (written with the pure Go
// SQLite driver) and a media manifest.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no cgo.
package anki
