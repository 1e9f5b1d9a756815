package anki

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mfbarros/errata/internal/config"
	"github.com/mfbarros/errata/internal/domain"
)

const (
	// defaultDeckID is Anki's mandatory built-in deck.
	defaultDeckID = 1

	// collectionFile and mediaFile are the member names inside the
	// .apkg archive.
	collectionFile = "collection.anki2"
	mediaFile      = "media"

	// fieldSeparator joins note field values inside the collection.
	fieldSeparator = "\x1f"

	// filenameTimeLayout stamps each package file name.
	filenameTimeLayout = "20060102_150405"
)

// Deck is a named, uniquely identified container of cards, built in
// memory and never mutated after creation.
type Deck struct {
	ID    int64
	Name  string
	Cards []domain.DeckCard
}

// Packager builds Anki package files from deck card entries.
type Packager struct {
	outputDir    string
	mainDeckName string
	logger       *slog.Logger

	// now is swappable for deterministic file names in tests.
	now func() time.Time
}

// NewPackager creates a packager writing under cfg.Dir with cfg.DeckName
// as the main deck. If logger is nil, the default logger is used.
func NewPackager(cfg config.OutputConfig, logger *slog.Logger) *Packager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Packager{
		outputDir:    cfg.Dir,
		mainDeckName: cfg.DeckName,
		logger:       logger.With(slog.String("component", "anki_packager")),
		now:          time.Now,
	}
}

// BuildAndSave groups the cards by discipline, builds one sub-deck per
// discipline named "{main}::{discipline}" and serializes all sub-decks
// into a single .apkg file under the output directory. The directory
// is created if absent. Returns the written file's path.
//
// An empty card list still produces a validly structured package with
// zero decks. Filesystem and database errors propagate: a partial
// package is useless.
func (p *Packager) BuildAndSave(ctx context.Context, cards []domain.DeckCard) (string, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", p.outputDir, err)
	}

	groups := GroupByDiscipline(cards)
	decks := make([]Deck, 0, len(groups))
	for _, group := range groups {
		name := fmt.Sprintf("%s::%s", p.mainDeckName, group.Discipline)
		decks = append(decks, Deck{
			ID:    DeckID(name),
			Name:  name,
			Cards: group.Cards,
		})
	}

	now := p.now()
	filename := fmt.Sprintf("%s_%s.apkg",
		strings.ReplaceAll(p.mainDeckName, " ", "_"),
		now.Format(filenameTimeLayout))
	path := filepath.Join(p.outputDir, filename)

	if err := writePackage(path, decks, now); err != nil {
		return "", err
	}

	p.logger.InfoContext(ctx, "Anki package written",
		"path", path,
		"decks", len(decks),
		"cards", len(cards))
	return path, nil
}

// collectionSchema is the Anki 2 collection layout, as importable by
// the desktop application.
const collectionSchema = `
CREATE TABLE col (
    id     integer primary key,
    crt    integer not null,
    mod    integer not null,
    scm    integer not null,
    ver    integer not null,
    dty    integer not null,
    usn    integer not null,
    ls     integer not null,
    conf   text not null,
    models text not null,
    decks  text not null,
    dconf  text not null,
    tags   text not null
);
CREATE TABLE notes (
    id    integer primary key,
    guid  text not null,
    mid   integer not null,
    mod   integer not null,
    usn   integer not null,
    tags  text not null,
    flds  text not null,
    sfld  integer not null,
    csum  integer not null,
    flags integer not null,
    data  text not null
);
CREATE TABLE cards (
    id     integer primary key,
    nid    integer not null,
    did    integer not null,
    ord    integer not null,
    mod    integer not null,
    usn    integer not null,
    type   integer not null,
    queue  integer not null,
    due    integer not null,
    ivl    integer not null,
    factor integer not null,
    reps   integer not null,
    lapses integer not null,
    left   integer not null,
    odue   integer not null,
    odid   integer not null,
    flags  integer not null,
    data   text not null
);
CREATE TABLE revlog (
    id      integer primary key,
    cid     integer not null,
    usn     integer not null,
    ease    integer not null,
    ivl     integer not null,
    lastIvl integer not null,
    factor  integer not null,
    time    integer not null,
    type    integer not null
);
CREATE TABLE graves (
    usn  integer not null,
    oid  integer not null,
    type integer not null
);
CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_cid ON revlog (cid);
CREATE INDEX ix_notes_csum ON notes (csum);
`

// writePackage builds the collection database in a scratch directory
// and zips it, together with an empty media manifest, into path.
func writePackage(path string, decks []Deck, now time.Time) error {
	scratch, err := os.MkdirTemp("", "errata-apkg-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	dbPath := filepath.Join(scratch, collectionFile)
	if err := writeCollection(dbPath, decks, now); err != nil {
		return err
	}

	return writeArchive(path, dbPath)
}

// writeCollection creates the collection.anki2 database at dbPath.
func writeCollection(dbPath string, decks []Deck, now time.Time) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open collection database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("failed to create collection schema: %w", err)
	}

	nowSec := now.Unix()
	nowMilli := now.UnixMilli()

	conf, err := json.Marshal(confJSON())
	if err != nil {
		return fmt.Errorf("failed to marshal collection conf: %w", err)
	}
	models, err := json.Marshal(modelsJSON(nowSec))
	if err != nil {
		return fmt.Errorf("failed to marshal models: %w", err)
	}
	deckEntries, err := json.Marshal(decksJSON(decks, nowSec))
	if err != nil {
		return fmt.Errorf("failed to marshal decks: %w", err)
	}
	dconf, err := json.Marshal(dconfJSON(nowSec))
	if err != nil {
		return fmt.Errorf("failed to marshal deck configuration: %w", err)
	}

	// crt is the collection creation date, truncated to local midnight.
	crt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Unix()

	if _, err := db.Exec(
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		crt, nowMilli, nowMilli, string(conf), string(models), string(deckEntries), string(dconf),
	); err != nil {
		return fmt.Errorf("failed to insert collection row: %w", err)
	}

	noteID := nowMilli
	cardID := nowMilli + 1_000_000
	due := 0

	for _, deck := range decks {
		for _, card := range deck.Cards {
			fields := strings.Join([]string{
				card.Question,
				card.Answer,
				card.TopicOrDefault(),
				card.Discipline,
				card.SourceOrDefault(),
			}, fieldSeparator)

			if _, err := db.Exec(
				`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
				 VALUES (?, ?, ?, ?, 0, '', ?, ?, ?, 0, '')`,
				noteID, noteGUID(fields), noteModelID, nowSec, fields, card.Question, fieldChecksum(card.Question),
			); err != nil {
				return fmt.Errorf("failed to insert note: %w", err)
			}

			if _, err := db.Exec(
				`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due,
				                    ivl, factor, reps, lapses, left, odue, odid, flags, data)
				 VALUES (?, ?, ?, 0, ?, 0, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
				cardID, noteID, deck.ID, nowSec, due,
			); err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}

			noteID++
			cardID++
			due++
		}
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close collection database: %w", err)
	}
	return nil
}

// writeArchive zips the collection database and an empty media
// manifest into the .apkg file at path.
func writeArchive(path, dbPath string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create package file: %w", err)
	}
	defer func() { _ = out.Close() }()

	archive := zip.NewWriter(out)

	collection, err := archive.Create(collectionFile)
	if err != nil {
		return fmt.Errorf("failed to add collection to package: %w", err)
	}
	src, err := os.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open collection database: %w", err)
	}
	if _, err := io.Copy(collection, src); err != nil {
		_ = src.Close()
		return fmt.Errorf("failed to copy collection into package: %w", err)
	}
	if err := src.Close(); err != nil {
		return fmt.Errorf("failed to close collection database: %w", err)
	}

	media, err := archive.Create(mediaFile)
	if err != nil {
		return fmt.Errorf("failed to add media manifest to package: %w", err)
	}
	if _, err := media.Write([]byte("{}")); err != nil {
		return fmt.Errorf("failed to write media manifest: %w", err)
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("failed to finalize package archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close package file: %w", err)
	}
	return nil
}
