// Package redact removes credentials from strings before they are
// logged. Upstream APIs occasionally echo request headers or tokens
// back inside error payloads, and those payloads are logged verbatim
// when a call fails.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder   = "[REDACTED]"
	RedactedKeyPlaceholder = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Authorization headers echoed back in error payloads.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)

	// Key-value credential assignments in JSON bodies, query strings
	// or plain text.
	apiKeyRegex = regexp.MustCompile(
		`(?i)(api[_-]?key|token|secret|authorization)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
)

// String redacts credential-shaped substrings from the input. Safe to
// call on arbitrary response bodies.
func String(input string) string {
	if input == "" {
		return input
	}

	result := bearerRegex.ReplaceAllString(input, RedactionPlaceholder)
	result = apiKeyRegex.ReplaceAllString(result, "$1$2"+RedactedKeyPlaceholder)
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
