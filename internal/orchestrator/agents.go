package orchestrator

import (
	"context"
	"fmt"

	"github.com/quillview/studycore/internal/gen"
	"github.com/quillview/studycore/internal/task"
)

type createNotesAgent struct {
	gen gen.ContentGenerator
	rec Recorder
}

func (a createNotesAgent) Run(ctx context.Context, action task.Action) AgentResult {
	drafts, err := a.gen.GenerateNotes(ctx, action.Topic, action.Count)
	if err != nil {
		return failure(action, fmt.Errorf("generate notes: %w", err))
	}
	if a.rec != nil {
		if _, err := a.rec.SaveNotes(ctx, drafts); err != nil {
			return failure(action, fmt.Errorf("save notes: %w", err))
		}
	}
	return AgentResult{
		Action:    action,
		OK:        true,
		Message:   fmt.Sprintf("created %d notes on %q", len(drafts), action.Topic),
		Artifacts: Artifacts{Notes: drafts},
	}
}

type createCardsAgent struct {
	gen gen.ContentGenerator
	rec Recorder
}

func (a createCardsAgent) Run(ctx context.Context, action task.Action) AgentResult {
	drafts, err := a.gen.GenerateFlashcards(ctx, action.Topic, action.Count)
	if err != nil {
		return failure(action, fmt.Errorf("generate flashcards: %w", err))
	}
	if a.rec != nil {
		if _, err := a.rec.SaveCards(ctx, drafts); err != nil {
			return failure(action, fmt.Errorf("save flashcards: %w", err))
		}
	}
	return AgentResult{
		Action:    action,
		OK:        true,
		Message:   fmt.Sprintf("created %d flashcards on %q", len(drafts), action.Topic),
		Artifacts: Artifacts{Cards: drafts},
	}
}

type createScheduleAgent struct {
	gen gen.ContentGenerator
	rec Recorder
}

func (a createScheduleAgent) Run(ctx context.Context, action task.Action) AgentResult {
	drafts, err := a.gen.GenerateSchedule(ctx, action.Topic)
	if err != nil {
		return failure(action, fmt.Errorf("generate schedule: %w", err))
	}
	if a.rec != nil {
		if _, err := a.rec.SaveSchedule(ctx, drafts); err != nil {
			return failure(action, fmt.Errorf("save schedule: %w", err))
		}
	}
	return AgentResult{
		Action:    action,
		OK:        true,
		Message:   fmt.Sprintf("planned %d schedule entries on %q", len(drafts), action.Topic),
		Artifacts: Artifacts{Schedule: drafts},
	}
}

type createFunAgent struct {
	gen gen.ContentGenerator
}

func (a createFunAgent) Run(ctx context.Context, action task.Action) AgentResult {
	content, err := a.gen.GenerateFun(ctx, action.Topic, "")
	if err != nil {
		return failure(action, fmt.Errorf("generate fun content: %w", err))
	}
	return AgentResult{
		Action:    action,
		OK:        true,
		Message:   fmt.Sprintf("generated fun content on %q", action.Topic),
		Artifacts: Artifacts{Fun: []string{content}},
	}
}

type deleteAgent struct {
	sink   gen.DeletionSink
	target task.Target
}

func (a deleteAgent) Run(ctx context.Context, action task.Action) AgentResult {
	if err := a.sink.DeleteAll(ctx, a.target); err != nil {
		return failure(action, fmt.Errorf("clear %s: %w", a.target, err))
	}
	return AgentResult{
		Action:    action,
		OK:        true,
		Message:   fmt.Sprintf("cleared all %s", a.target),
		Artifacts: Artifacts{Cleared: []task.Target{a.target}},
	}
}
