// Package gemini implements the generation.Synthesizer interface using
// Google's Gemini API, as an alternate provider to the default Groq
// backend. It honours the same synthesis contract: strict JSON
// response parsing, the flashcard cap, pacing before dispatch and no
// retries.
package gemini
