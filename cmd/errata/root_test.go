package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
)

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{
		LLM:    config.LLMConfig{Model: "llama-3.3-70b-versatile"},
		Output: config.OutputConfig{Dir: "decks", DeckName: "Concurso"},
	}

	flagModel = ""
	flagOutputDir = ""
	flagDeckName = ""
	applyOverrides(cfg)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "decks", cfg.Output.Dir)
	assert.Equal(t, "Concurso", cfg.Output.DeckName)

	flagModel = "mixtral-8x7b"
	flagOutputDir = "/tmp/out"
	flagDeckName = "Revisão"
	applyOverrides(cfg)
	assert.Equal(t, "mixtral-8x7b", cfg.LLM.Model)
	assert.Equal(t, "/tmp/out", cfg.Output.Dir)
	assert.Equal(t, "Revisão", cfg.Output.DeckName)
}

func TestConfirmMarkDoneYesFlag(t *testing.T) {
	flagYes = true
	defer func() { flagYes = false }()

	assert.True(t, confirmMarkDone(&domain.StudyError{ID: "i-1"}))
}

func TestSelectionModeFlagsAreExclusive(t *testing.T) {
	rootCmd.SetArgs([]string{"--pending", "--id", "i-1"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
