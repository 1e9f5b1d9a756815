// Package main implements the errata command line tool, which turns
// logged study errors into Anki flashcard decks via LLM synthesis.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
