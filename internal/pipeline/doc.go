// Package pipeline drives the end-to-end flow: fetch study-error
// records from the store, synthesize flashcards for each, bundle the
// results into an Anki package and flag processed records. It is the
// only component with control flow; everything it touches sits behind
// an interface.
//
// Execution is strictly sequential. Every remote call is awaited to
// completion before the next starts, and the only shared state within
// a run is the accumulating card list, appended in record order.
package pipeline
