package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quillview/studycore/internal/model"
	"github.com/quillview/studycore/internal/srs"
)

// ErrCardNotFound is returned when a flashcard ID does not exist.
var ErrCardNotFound = errors.New("store: flashcard not found")

// DueCards returns the flashcards due at the given time, soonest first.
// A limit of 0 means no limit.
func (s *SQLiteStore) DueCards(ctx context.Context, now time.Time, limit int) ([]model.Flashcard, error) {
	query := `SELECT id, front, back, topic, created_at, ease_factor, interval_days, repetitions, due_at
		 FROM flashcards WHERE due_at <= ? ORDER BY due_at ASC`
	args := []interface{}{now.UTC().Format(time.RFC3339)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.Flashcard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetCard returns one flashcard by ID.
func (s *SQLiteStore) GetCard(ctx context.Context, id string) (model.Flashcard, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, front, back, topic, created_at, ease_factor, interval_days, repetitions, due_at
		 FROM flashcards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Flashcard{}, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return c, err
}

// ReviewCard grades one flashcard, advances its review state, and persists
// the result. It returns the updated card.
func (s *SQLiteStore) ReviewCard(ctx context.Context, id string, quality srs.Quality, now time.Time) (model.Flashcard, error) {
	card, err := s.GetCard(ctx, id)
	if err != nil {
		return model.Flashcard{}, err
	}

	card.Review = srs.Review(card.Review, quality, now)

	_, err = s.db.ExecContext(ctx,
		`UPDATE flashcards SET ease_factor = ?, interval_days = ?, repetitions = ?, due_at = ? WHERE id = ?`,
		card.Review.EaseFactor, card.Review.IntervalDays, card.Review.Repetitions,
		card.Review.DueAt.UTC().Format(time.RFC3339), card.ID)
	if err != nil {
		return model.Flashcard{}, fmt.Errorf("update review state: %w", err)
	}
	return card, nil
}

// Stats reports record counts per domain.
type Stats struct {
	Notes         int `json:"notes"`
	Flashcards    int `json:"flashcards"`
	DueFlashcards int `json:"due_flashcards"`
	ScheduleItems int `json:"schedule_items"`
}

// Counts returns record counts per domain at the given time.
func (s *SQLiteStore) Counts(ctx context.Context, now time.Time) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&st.Notes); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards`).Scan(&st.Flashcards); err != nil {
		return st, err
	}
	due := now.UTC().Format(time.RFC3339)
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards WHERE due_at <= ?`, due).Scan(&st.DueFlashcards); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedule_items`).Scan(&st.ScheduleItems); err != nil {
		return st, err
	}
	return st, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row scanner) (model.Flashcard, error) {
	var c model.Flashcard
	var createdAt, dueAt string

	err := row.Scan(&c.ID, &c.Front, &c.Back, &c.Topic, &createdAt,
		&c.Review.EaseFactor, &c.Review.IntervalDays, &c.Review.Repetitions, &dueAt)
	if err != nil {
		return c, err
	}

	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return c, fmt.Errorf("parse created_at: %w", err)
	}
	if c.Review.DueAt, err = time.Parse(time.RFC3339, dueAt); err != nil {
		return c, fmt.Errorf("parse due_at: %w", err)
	}
	return c, nil
}
