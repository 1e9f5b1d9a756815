package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
	"github.com/mfbarros/errata/internal/generation"
	"github.com/mfbarros/errata/internal/pipeline"
	"github.com/mfbarros/errata/internal/platform/anki"
	"github.com/mfbarros/errata/internal/platform/coda"
	"github.com/mfbarros/errata/internal/platform/gemini"
	"github.com/mfbarros/errata/internal/platform/groq"
	"github.com/mfbarros/errata/internal/platform/logger"
)

var (
	flagPending    bool
	flagDiscipline string
	flagID         string
	flagLimit      int
	flagModel      string
	flagOutputDir  string
	flagDeckName   string
	flagYes        bool
)

var rootCmd = &cobra.Command{
	Use:   "errata",
	Short: "Generate Anki decks from logged study errors",
	Long: `errata fetches pending study error records from a Coda table,
asks a language model to synthesize flashcards from each record's
resolution text and bundles the result into an importable .apkg file.

Exactly one selection mode must be given: --pending processes the
pending queue and marks processed records as done, --discipline
processes records of one discipline without marking anything, and
--id processes a single record and asks before marking it done.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.Flags().BoolVar(&flagPending, "pending", false, "process pending records and mark them done")
	rootCmd.Flags().StringVar(&flagDiscipline, "discipline", "", "process records of one discipline (never marks done)")
	rootCmd.Flags().StringVar(&flagID, "id", "", "process a single record by row id")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 5, "maximum number of records to fetch")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "override the configured model identifier")
	rootCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "override the configured output directory")
	rootCmd.Flags().StringVar(&flagDeckName, "deck-name", "", "override the configured main deck name")
	rootCmd.Flags().BoolVar(&flagYes, "yes", false, "skip the mark-done confirmation in --id mode")

	rootCmd.MarkFlagsMutuallyExclusive("pending", "discipline", "id")
	rootCmd.MarkFlagsOneRequired("pending", "discipline", "id")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", flagLimit)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg)

	appLogger := logger.Setup(cfg.LogLevel)

	p, err := buildPipeline(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	summary, err := dispatch(ctx, p)
	if summary != nil {
		fmt.Print(summary.Render())
	}
	return err
}

// applyOverrides folds command line overrides into the loaded
// configuration so the rest of the wiring only ever sees one source.
func applyOverrides(cfg *config.Config) {
	if flagModel != "" {
		cfg.LLM.Model = flagModel
	}
	if flagOutputDir != "" {
		cfg.Output.Dir = flagOutputDir
	}
	if flagDeckName != "" {
		cfg.Output.DeckName = flagDeckName
	}
}

func buildPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	store := coda.NewClient(cfg.Coda, logger)

	synth, err := buildSynthesizer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	packager := anki.NewPackager(cfg.Output, logger)

	p, err := pipeline.New(store, synth, packager, cfg.LLM.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble pipeline: %w", err)
	}
	return p, nil
}

func buildSynthesizer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generation.Synthesizer, error) {
	switch cfg.LLM.Provider {
	case "groq":
		synth, err := groq.NewSynthesizer(cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create groq synthesizer: %w", err)
		}
		return synth, nil
	case "gemini":
		synth, err := gemini.NewSynthesizer(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini synthesizer: %w", err)
		}
		return synth, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}

func dispatch(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Summary, error) {
	switch {
	case flagPending:
		return p.ProcessPending(ctx, flagLimit)
	case flagDiscipline != "":
		return p.ProcessDiscipline(ctx, flagDiscipline, flagLimit)
	default:
		return p.ProcessRecord(ctx, flagID, confirmMarkDone)
	}
}

// confirmMarkDone asks the operator whether the processed record
// should be flagged as done. The --yes flag answers for them.
func confirmMarkDone(record *domain.StudyError) bool {
	if flagYes {
		return true
	}

	fmt.Printf("Marcar registro %s como concluído? (s/n): ", record.ID)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "s")
}
