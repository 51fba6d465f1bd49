// Package model defines the study content data types: drafts produced by
// content generators and the persisted records built from them.
package model

import (
	"time"

	"github.com/quillview/studycore/internal/srs"
)

// NoteDraft is one generated study note before persistence.
type NoteDraft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Topic string `json:"topic"`
}

// CardDraft is one generated flashcard before persistence.
type CardDraft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Topic string `json:"topic"`
}

// ScheduleItemDraft is one generated study-plan entry before persistence.
type ScheduleItemDraft struct {
	Title  string `json:"title"`
	Topic  string `json:"topic"`
	DayNum int    `json:"day"` // 1-based day offset within the plan
}

// Note is a persisted study note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// Flashcard is a persisted flashcard together with its review state. The
// review state lives and dies with the card.
type Flashcard struct {
	ID        string    `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	Review    srs.State `json:"review"`
}

// ScheduleItem is a persisted study-plan entry.
type ScheduleItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	DayNum    int       `json:"day"`
	CreatedAt time.Time `json:"created_at"`
}
