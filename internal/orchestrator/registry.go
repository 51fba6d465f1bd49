package orchestrator

import (
	"context"

	"github.com/quillview/studycore/internal/gen"
	"github.com/quillview/studycore/internal/model"
	"github.com/quillview/studycore/internal/task"
)

// Capability identifies the kind of action an agent can fulfill.
type Capability struct {
	Verb   task.Verb
	Target task.Target
}

// Agent fulfills one action. Implementations may block on network calls;
// they must report failures through the result, never by panicking.
type Agent interface {
	Run(ctx context.Context, action task.Action) AgentResult
}

// Registry maps capabilities to agents. It is built once at orchestrator
// construction and read-only afterwards.
type Registry map[Capability]Agent

// Lookup returns the agent registered for the capability.
func (r Registry) Lookup(c Capability) (Agent, bool) {
	a, ok := r[c]
	return a, ok
}

// Recorder persists generated drafts. The store implements it; agents
// treat it as optional so the pipeline also runs fully in-memory.
type Recorder interface {
	SaveNotes(ctx context.Context, drafts []model.NoteDraft) ([]model.Note, error)
	SaveCards(ctx context.Context, drafts []model.CardDraft) ([]model.Flashcard, error)
	SaveSchedule(ctx context.Context, drafts []model.ScheduleItemDraft) ([]model.ScheduleItem, error)
}

// DefaultRegistry wires the built-in agents: creation per domain over the
// content generator, deletion per domain over the sink. rec may be nil, in
// which case generated drafts are returned but not persisted. No Update
// capabilities are registered; update actions surface as unavailable.
func DefaultRegistry(g gen.ContentGenerator, sink gen.DeletionSink, rec Recorder) Registry {
	r := Registry{
		Capability{task.Create, task.Notes}:      createNotesAgent{gen: g, rec: rec},
		Capability{task.Create, task.Flashcards}: createCardsAgent{gen: g, rec: rec},
		Capability{task.Create, task.Schedule}:   createScheduleAgent{gen: g, rec: rec},
		Capability{task.Create, task.Fun}:        createFunAgent{gen: g},
	}
	if sink != nil {
		for _, t := range task.KnownTargets {
			r[Capability{task.Delete, t}] = deleteAgent{sink: sink, target: t}
		}
	}
	return r
}
