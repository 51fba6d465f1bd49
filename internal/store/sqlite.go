// Package store persists study content in SQLite: notes, flashcards with
// their review state, and schedule items. It implements the deletion sink
// and draft recorder the orchestrator's agents call through, plus the
// review loop used by the CLI.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/quillview/studycore/internal/gen"
	"github.com/quillview/studycore/internal/model"
	"github.com/quillview/studycore/internal/orchestrator"
	"github.com/quillview/studycore/internal/srs"
	"github.com/quillview/studycore/internal/task"
)

// SQLiteStore is the SQLite-backed content store. It is safe for
// concurrent use: the orchestrator dispatches agents in parallel and
// every create-agent writes through the same store.
type SQLiteStore struct {
	db *sql.DB

	// entropyMu guards entropy: math/rand.Rand is not goroutine-safe and
	// concurrent agents generate IDs at the same time.
	entropyMu sync.Mutex
	entropy   *rand.Rand
}

var (
	_ orchestrator.Recorder = (*SQLiteStore)(nil)
	_ gen.DeletionSink      = (*SQLiteStore)(nil)
)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	// busy_timeout makes concurrent write transactions wait for the lock
	// instead of failing with SQLITE_BUSY while sibling agents commit.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.entropyMu.Lock()
	defer s.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		topic      TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_topic ON notes(topic);

	CREATE TABLE IF NOT EXISTS flashcards (
		id            TEXT PRIMARY KEY,
		front         TEXT NOT NULL,
		back          TEXT NOT NULL,
		topic         TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		ease_factor   REAL NOT NULL,
		interval_days INTEGER NOT NULL,
		repetitions   INTEGER NOT NULL,
		due_at        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_flashcards_topic ON flashcards(topic);
	CREATE INDEX IF NOT EXISTS idx_flashcards_due ON flashcards(due_at);

	CREATE TABLE IF NOT EXISTS schedule_items (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		topic      TEXT NOT NULL,
		day_num    INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_schedule_topic ON schedule_items(topic);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveNotes persists generated note drafts and returns the stored records.
func (s *SQLiteStore) SaveNotes(ctx context.Context, drafts []model.NoteDraft) ([]model.Note, error) {
	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	notes := make([]model.Note, 0, len(drafts))
	for _, d := range drafts {
		n := model.Note{
			ID:        s.newID(),
			Title:     d.Title,
			Body:      d.Body,
			Topic:     d.Topic,
			CreatedAt: now,
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO notes (id, title, body, topic, created_at) VALUES (?, ?, ?, ?, ?)`,
			n.ID, n.Title, n.Body, n.Topic, now.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("insert note: %w", err)
		}
		notes = append(notes, n)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveCards persists generated flashcard drafts. Each new card starts with
// the initial review state: immediately due, baseline ease.
func (s *SQLiteStore) SaveCards(ctx context.Context, drafts []model.CardDraft) ([]model.Flashcard, error) {
	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	cards := make([]model.Flashcard, 0, len(drafts))
	for _, d := range drafts {
		c := model.Flashcard{
			ID:        s.newID(),
			Front:     d.Front,
			Back:      d.Back,
			Topic:     d.Topic,
			CreatedAt: now,
			Review:    srs.Init(now),
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO flashcards (id, front, back, topic, created_at, ease_factor, interval_days, repetitions, due_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Front, c.Back, c.Topic, now.Format(time.RFC3339),
			c.Review.EaseFactor, c.Review.IntervalDays, c.Review.Repetitions,
			c.Review.DueAt.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("insert flashcard: %w", err)
		}
		cards = append(cards, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cards, nil
}

// SaveSchedule persists generated schedule drafts.
func (s *SQLiteStore) SaveSchedule(ctx context.Context, drafts []model.ScheduleItemDraft) ([]model.ScheduleItem, error) {
	now := time.Now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	items := make([]model.ScheduleItem, 0, len(drafts))
	for _, d := range drafts {
		it := model.ScheduleItem{
			ID:        s.newID(),
			Title:     d.Title,
			Topic:     d.Topic,
			DayNum:    d.DayNum,
			CreatedAt: now,
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_items (id, title, topic, day_num, created_at) VALUES (?, ?, ?, ?, ?)`,
			it.ID, it.Title, it.Topic, it.DayNum, now.Format(time.RFC3339))
		if err != nil {
			return nil, fmt.Errorf("insert schedule item: %w", err)
		}
		items = append(items, it)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteAll clears every record in one content domain. Fun content is
// never persisted, so clearing it always succeeds.
func (s *SQLiteStore) DeleteAll(ctx context.Context, target task.Target) error {
	var table string
	switch target {
	case task.Notes:
		table = "notes"
	case task.Flashcards:
		table = "flashcards"
	case task.Schedule:
		table = "schedule_items"
	case task.Fun:
		return nil
	default:
		return fmt.Errorf("unknown target: %s", target)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
