// Package generation defines the boundary between the pipeline and the
// hosted language model services used to synthesize flashcards. It
// abstracts the LLM API details (Groq, Gemini) behind a single
// interface so the orchestrator never couples to a specific provider.
package generation
