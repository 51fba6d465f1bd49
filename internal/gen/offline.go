package gen

import (
	"context"
	"fmt"

	"github.com/quillview/studycore/internal/model"
)

// scheduleDays is the length of an offline study plan.
const scheduleDays = 5

// Offline is a template-based ContentGenerator that produces deterministic
// placeholder content without any network calls. It backs the CLI when no
// API key is configured and the core's tests.
type Offline struct{}

var _ ContentGenerator = Offline{}

// GenerateNotes implements ContentGenerator.
func (Offline) GenerateNotes(_ context.Context, topic string, count int) ([]model.NoteDraft, error) {
	notes := make([]model.NoteDraft, 0, count)
	for i := 1; i <= count; i++ {
		notes = append(notes, model.NoteDraft{
			Title: fmt.Sprintf("%s: note %d", topic, i),
			Body:  fmt.Sprintf("Key points about %s (part %d of %d).", topic, i, count),
			Topic: topic,
		})
	}
	return notes, nil
}

// GenerateFlashcards implements ContentGenerator.
func (Offline) GenerateFlashcards(_ context.Context, topic string, count int) ([]model.CardDraft, error) {
	cards := make([]model.CardDraft, 0, count)
	for i := 1; i <= count; i++ {
		cards = append(cards, model.CardDraft{
			Front: fmt.Sprintf("Question %d about %s?", i, topic),
			Back:  fmt.Sprintf("Answer %d about %s.", i, topic),
			Topic: topic,
		})
	}
	return cards, nil
}

// GenerateSchedule implements ContentGenerator.
func (Offline) GenerateSchedule(_ context.Context, topic string) ([]model.ScheduleItemDraft, error) {
	items := make([]model.ScheduleItemDraft, 0, scheduleDays)
	for day := 1; day <= scheduleDays; day++ {
		items = append(items, model.ScheduleItemDraft{
			Title:  fmt.Sprintf("Day %d: study %s", day, topic),
			Topic:  topic,
			DayNum: day,
		})
	}
	return items, nil
}

// GenerateFun implements ContentGenerator.
func (Offline) GenerateFun(_ context.Context, topic, kind string) (string, error) {
	if kind == "" {
		kind = "fact"
	}
	return fmt.Sprintf("Here is a %s about %s to keep you going.", kind, topic), nil
}
