package anki

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
)

func newTestPackager(t *testing.T) *Packager {
	t.Helper()
	p := NewPackager(config.OutputConfig{
		Dir:      t.TempDir(),
		DeckName: "Concurso",
	}, nil)
	p.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return p
}

// openCollection extracts collection.anki2 from the .apkg at path and
// opens it as a SQLite database.
func openCollection(t *testing.T, path string) *sql.DB {
	t.Helper()

	archive, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, archive.Close()) }()

	names := make([]string, 0, len(archive.File))
	var collection *zip.File
	for _, f := range archive.File {
		names = append(names, f.Name)
		if f.Name == "collection.anki2" {
			collection = f
		}
	}
	require.NotNil(t, collection, "package must contain collection.anki2, has %v", names)
	assert.Contains(t, names, "media")

	src, err := collection.Open()
	require.NoError(t, err)
	defer func() { require.NoError(t, src.Close()) }()

	dbPath := filepath.Join(t.TempDir(), "collection.anki2")
	dst, err := os.Create(dbPath)
	require.NoError(t, err)
	_, err = io.Copy(dst, src)
	require.NoError(t, err)
	require.NoError(t, dst.Close())

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// collectionDeckNames returns the non-default deck names stored in the
// collection's decks JSON.
func collectionDeckNames(t *testing.T, db *sql.DB) []string {
	t.Helper()

	var decksBlob string
	require.NoError(t, db.QueryRow("SELECT decks FROM col").Scan(&decksBlob))

	var decks map[string]struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(decksBlob), &decks))

	names := make([]string, 0, len(decks))
	for id, deck := range decks {
		if id == "1" {
			continue
		}
		names = append(names, deck.Name)
	}
	return names
}

func TestDeckIDDeterministic(t *testing.T) {
	t.Parallel()

	first := DeckID("Concurso::Direito")
	second := DeckID("Concurso::Direito")
	assert.Equal(t, first, second)

	other := DeckID("Concurso::Contabilidade")
	assert.NotEqual(t, first, other)

	// Fixed range: sha256 mod 1e9.
	assert.GreaterOrEqual(t, first, int64(0))
	assert.Less(t, first, int64(1_000_000_000))
}

func TestCardsFromFlashcards(t *testing.T) {
	t.Parallel()

	items := []domain.Flashcard{
		{Question: "Q1", Answer: "A1", Topic: "ignored at this stage"},
		{Question: "Q2", Answer: "A2"},
	}

	cards := CardsFromFlashcards(items, "Direito", "Art. 5", "i-42")
	require.Len(t, cards, 2)

	for i, card := range cards {
		assert.Equal(t, items[i].Question, card.Question)
		assert.Equal(t, items[i].Answer, card.Answer)
		assert.Equal(t, "Art. 5", card.Topic)
		assert.Equal(t, "Direito", card.Discipline)
		assert.Equal(t, "i-42", card.SourceID)
	}
}

func TestGroupByDisciplinePreservesOrder(t *testing.T) {
	t.Parallel()

	cards := []domain.DeckCard{
		{Question: "q1", Answer: "a1", Discipline: "A"},
		{Question: "q2", Answer: "a2", Discipline: "B"},
		{Question: "q3", Answer: "a3", Discipline: "A"},
	}

	groups := GroupByDiscipline(cards)
	require.Len(t, groups, 2)

	assert.Equal(t, "A", groups[0].Discipline)
	assert.Equal(t, "B", groups[1].Discipline)

	require.Len(t, groups[0].Cards, 2)
	assert.Equal(t, "q1", groups[0].Cards[0].Question)
	assert.Equal(t, "q3", groups[0].Cards[1].Question)
	require.Len(t, groups[1].Cards, 1)
}

func TestBuildAndSaveEmpty(t *testing.T) {
	t.Parallel()

	p := newTestPackager(t)
	path, err := p.BuildAndSave(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Concurso_20250314_092653.apkg", filepath.Base(path))

	db := openCollection(t, path)
	assert.Empty(t, collectionDeckNames(t, db))

	var notes int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes))
	assert.Zero(t, notes)
}

func TestBuildAndSaveGroupsIntoSubDecks(t *testing.T) {
	t.Parallel()

	cards := []domain.DeckCard{
		{Question: "Q1", Answer: "A1", Topic: "Art. 5", Discipline: "Direito", SourceID: "i-1"},
		{Question: "Q2", Answer: "A2", Discipline: "Contabilidade", SourceID: "i-2"},
		{Question: "Q3", Answer: "A3", Discipline: "Direito", SourceID: "i-1"},
	}

	p := newTestPackager(t)
	path, err := p.BuildAndSave(context.Background(), cards)
	require.NoError(t, err)

	db := openCollection(t, path)

	names := collectionDeckNames(t, db)
	assert.ElementsMatch(t, []string{"Concurso::Direito", "Concurso::Contabilidade"}, names)

	var notes, storedCards int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&storedCards))
	assert.Equal(t, 3, notes)
	assert.Equal(t, 3, storedCards)

	// Each card row must point at its discipline's deck.
	var direitoCount int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(*) FROM cards WHERE did = ?", DeckID("Concurso::Direito"),
	).Scan(&direitoCount))
	assert.Equal(t, 2, direitoCount)
}

func TestBuildAndSaveNoteFields(t *testing.T) {
	t.Parallel()

	cards := []domain.DeckCard{
		{Question: "Q1", Answer: "A1", Topic: "Art. 5", Discipline: "Direito", SourceID: "i-42"},
		{Question: "Q2", Answer: "A2", Discipline: "Direito"},
	}

	p := newTestPackager(t)
	path, err := p.BuildAndSave(context.Background(), cards)
	require.NoError(t, err)

	db := openCollection(t, path)

	rows, err := db.Query("SELECT flds FROM notes ORDER BY id")
	require.NoError(t, err)
	defer func() { require.NoError(t, rows.Close()) }()

	var fields [][]string
	for rows.Next() {
		var flds string
		require.NoError(t, rows.Scan(&flds))
		fields = append(fields, strings.Split(flds, "\x1f"))
	}
	require.NoError(t, rows.Err())
	require.Len(t, fields, 2)

	assert.Equal(t, []string{"Q1", "A1", "Art. 5", "Direito", "i-42"}, fields[0])
	// Absent topic and source fall back to the generic labels.
	assert.Equal(t, []string{"Q2", "A2", "Geral", "Direito", "Gerado por IA"}, fields[1])
}

func TestBuildAndSaveCreatesOutputDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "decks")
	p := NewPackager(config.OutputConfig{Dir: dir, DeckName: "Meu Baralho"}, nil)

	path, err := p.BuildAndSave(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "Meu_Baralho_"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
