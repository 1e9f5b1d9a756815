// Package groq implements the generation.Synthesizer interface against
// the Groq chat-completions API (OpenAI-compatible wire format). One
// request per synthesis call, no retries; the structured JSON response
// is validated strictly against the synthesis schema.
package groq
