// Package gen defines the collaborator contracts the orchestrator calls
// through: content generation per domain and bulk deletion per domain. It
// also ships a deterministic offline generator used when no LLM backend is
// configured.
package gen

import (
	"context"

	"github.com/quillview/studycore/internal/model"
	"github.com/quillview/studycore/internal/task"
)

// ContentGenerator synthesizes study content for a topic. Implementations
// may call out to the network; the core imposes no timeout or retry on
// them.
type ContentGenerator interface {
	GenerateNotes(ctx context.Context, topic string, count int) ([]model.NoteDraft, error)
	GenerateFlashcards(ctx context.Context, topic string, count int) ([]model.CardDraft, error)
	GenerateSchedule(ctx context.Context, topic string) ([]model.ScheduleItemDraft, error)
	GenerateFun(ctx context.Context, topic, kind string) (string, error)
}

// DeletionSink clears every record in one content domain.
type DeletionSink interface {
	DeleteAll(ctx context.Context, target task.Target) error
}
