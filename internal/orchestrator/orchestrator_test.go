package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/quillview/studycore/internal/gen"
	"github.com/quillview/studycore/internal/task"
)

// memorySink records cleared domains. Deletes may run concurrently.
type memorySink struct {
	mu      sync.Mutex
	cleared map[task.Target]int
	err     error
}

func newMemorySink() *memorySink {
	return &memorySink{cleared: map[task.Target]int{}}
}

func (m *memorySink) DeleteAll(_ context.Context, target task.Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cleared[target]++
	return nil
}

type failingAgent struct{}

func (failingAgent) Run(_ context.Context, action task.Action) AgentResult {
	return failure(action, errors.New("backend unavailable"))
}

func newTestOrchestrator(reg Registry) *Orchestrator {
	return New(Options{Registry: reg})
}

func defaultTestOrchestrator(sink gen.DeletionSink) *Orchestrator {
	return newTestOrchestrator(DefaultRegistry(gen.Offline{}, sink, nil))
}

func TestProcessRequest_TypoLadenCreatePair(t *testing.T) {
	o := defaultTestOrchestrator(newMemorySink())

	res := o.ProcessRequest(context.Background(), "10 flashcarddd of react and 1 note for car")

	want := []task.Action{
		{Verb: task.Create, Target: task.Flashcards, Topic: "react", Count: 10},
		{Verb: task.Create, Target: task.Notes, Topic: "car", Count: 1},
	}
	if len(res.Plan.Actions) != 2 {
		t.Fatalf("plan = %+v, want 2 actions", res.Plan.Actions)
	}
	for i, a := range want {
		if res.Plan.Actions[i] != a {
			t.Errorf("plan[%d] = %+v, want %+v", i, res.Plan.Actions[i], a)
		}
	}

	if len(res.Artifacts.Cards) != 10 {
		t.Errorf("cards = %d, want 10", len(res.Artifacts.Cards))
	}
	if len(res.Artifacts.Notes) != 1 {
		t.Errorf("notes = %d, want 1", len(res.Artifacts.Notes))
	}
	if !strings.Contains(res.Summary, "flashcards") || !strings.Contains(res.Summary, "notes") {
		t.Errorf("summary %q does not name both domains", res.Summary)
	}
}

func TestProcessRequest_NumberWords(t *testing.T) {
	o := defaultTestOrchestrator(newMemorySink())

	res := o.ProcessRequest(context.Background(), "three flashcards about css and two notes for html")

	if len(res.Plan.Actions) != 2 {
		t.Fatalf("plan = %+v", res.Plan.Actions)
	}
	first := res.Plan.Actions[0]
	if first.Target != task.Flashcards || first.Topic != "css" || first.Count != 3 {
		t.Errorf("plan[0] = %+v", first)
	}
	second := res.Plan.Actions[1]
	if second.Target != task.Notes || second.Topic != "html" || second.Verb != task.Create {
		t.Errorf("plan[1] = %+v", second)
	}
}

func TestProcessRequest_MisspelledMultiDelete(t *testing.T) {
	for _, input := range []string{
		"delete all nots and flahcardd",
		"delete all notes and flashcards",
		"remove my nots and fladhca rd",
	} {
		sink := newMemorySink()
		o := defaultTestOrchestrator(sink)

		res := o.ProcessRequest(context.Background(), input)

		if len(res.Plan.Actions) != 2 {
			t.Fatalf("%q: plan = %+v, want 2 deletes", input, res.Plan.Actions)
		}
		for _, a := range res.Plan.Actions {
			if a.Verb != task.Delete {
				t.Errorf("%q: action %+v is not a delete", input, a)
			}
		}
		if sink.cleared[task.Notes] != 1 || sink.cleared[task.Flashcards] != 1 {
			t.Errorf("%q: cleared = %v", input, sink.cleared)
		}
		// A multi-domain delete names every cleared domain.
		if !strings.Contains(res.Summary, "notes") || !strings.Contains(res.Summary, "flashcards") {
			t.Errorf("%q: summary %q misses a domain", input, res.Summary)
		}
	}
}

func TestProcessRequest_DeleteEverything(t *testing.T) {
	sink := newMemorySink()
	o := defaultTestOrchestrator(sink)

	res := o.ProcessRequest(context.Background(), "delete everything")

	wantOrder := []task.Target{task.Notes, task.Flashcards, task.Schedule, task.Fun}
	if len(res.Plan.Actions) != len(wantOrder) {
		t.Fatalf("plan = %+v", res.Plan.Actions)
	}
	for i, target := range wantOrder {
		if res.Plan.Actions[i].Target != target {
			t.Errorf("plan[%d].Target = %s, want %s", i, res.Plan.Actions[i].Target, target)
		}
	}
	if len(res.Artifacts.Cleared) != 4 {
		t.Errorf("cleared artifacts = %v", res.Artifacts.Cleared)
	}
}

func TestProcessRequest_DuplicateCreatesMerged(t *testing.T) {
	o := defaultTestOrchestrator(newMemorySink())

	res := o.ProcessRequest(context.Background(), "3 cards of css and 2 cards of css")

	if len(res.Plan.Actions) != 1 {
		t.Fatalf("plan = %+v, want merged action", res.Plan.Actions)
	}
	if res.Plan.Actions[0].Count != 5 {
		t.Errorf("count = %d, want 5", res.Plan.Actions[0].Count)
	}
	if len(res.Artifacts.Cards) != 5 {
		t.Errorf("cards = %d, want 5", len(res.Artifacts.Cards))
	}
}

func TestProcessRequest_PartialFailureIsolated(t *testing.T) {
	reg := DefaultRegistry(gen.Offline{}, newMemorySink(), nil)
	reg[Capability{task.Create, task.Notes}] = failingAgent{}
	o := newTestOrchestrator(reg)

	res := o.ProcessRequest(context.Background(), "2 notes on css and 3 cards on css")

	if len(res.PerAction) != 2 {
		t.Fatalf("perAction = %+v", res.PerAction)
	}
	if res.PerAction[0].OK || res.PerAction[0].Err == "" {
		t.Errorf("notes action should have failed: %+v", res.PerAction[0])
	}
	if !res.PerAction[1].OK {
		t.Errorf("cards action should have succeeded: %+v", res.PerAction[1])
	}
	if len(res.Artifacts.Cards) != 3 {
		t.Errorf("cards = %d, want 3", len(res.Artifacts.Cards))
	}
	if !strings.Contains(res.Summary, "flashcards") {
		t.Errorf("summary %q misses the succeeding domain", res.Summary)
	}
}

func TestProcessRequest_MissingCapability(t *testing.T) {
	o := defaultTestOrchestrator(newMemorySink())

	res := o.ProcessRequest(context.Background(), "update my notes about css")

	if len(res.PerAction) != 1 {
		t.Fatalf("perAction = %+v", res.PerAction)
	}
	r := res.PerAction[0]
	if r.OK || !strings.Contains(r.Err, "no agent registered") {
		t.Errorf("result = %+v", r)
	}
	if !strings.Contains(res.Summary, "notes") {
		t.Errorf("summary %q misses the domain", res.Summary)
	}
}

func TestProcessRequest_EmptyPlanGuidance(t *testing.T) {
	o := defaultTestOrchestrator(newMemorySink())

	res := o.ProcessRequest(context.Background(), "ramble ramble nothing at all doing")

	if !res.Plan.Empty() {
		t.Fatalf("plan = %+v, want empty", res.Plan.Actions)
	}
	if res.Summary == "" {
		t.Fatal("empty plan must still produce guidance")
	}
	if len(res.PerAction) != 0 {
		t.Fatalf("perAction = %+v", res.PerAction)
	}
}

func TestProcessRequest_ResultsFollowPlanOrder(t *testing.T) {
	sink := newMemorySink()
	o := defaultTestOrchestrator(sink)

	res := o.ProcessRequest(context.Background(),
		"2 notes of css and 3 cards of html and delete my schedule")

	if len(res.PerAction) != len(res.Plan.Actions) {
		t.Fatalf("perAction = %d, plan = %d", len(res.PerAction), len(res.Plan.Actions))
	}
	for i, r := range res.PerAction {
		if r.Action != res.Plan.Actions[i] {
			t.Errorf("perAction[%d] = %+v out of plan order (want %+v)", i, r.Action, res.Plan.Actions[i])
		}
	}
}

func TestProcessRequest_SinkErrorRecordedNotThrown(t *testing.T) {
	sink := newMemorySink()
	sink.err = errors.New("disk on fire")
	o := defaultTestOrchestrator(sink)

	res := o.ProcessRequest(context.Background(), "delete all notes")

	if len(res.PerAction) != 1 || res.PerAction[0].OK {
		t.Fatalf("perAction = %+v", res.PerAction)
	}
	if !strings.Contains(res.PerAction[0].Err, "disk on fire") {
		t.Errorf("err = %q", res.PerAction[0].Err)
	}
}
