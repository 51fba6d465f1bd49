package orchestrator

import (
	"github.com/quillview/studycore/internal/model"
	"github.com/quillview/studycore/internal/task"
	"github.com/quillview/studycore/internal/textnorm"
)

// Artifacts is the closed union of everything agents can produce, keyed by
// domain. Callers can match on it exhaustively instead of digging through
// an open map.
type Artifacts struct {
	Notes    []model.NoteDraft         `json:"notes,omitempty"`
	Cards    []model.CardDraft         `json:"flashcards,omitempty"`
	Schedule []model.ScheduleItemDraft `json:"schedule,omitempty"`
	Fun      []string                  `json:"fun,omitempty"`
	Cleared  []task.Target             `json:"cleared,omitempty"`
}

func (a *Artifacts) merge(b Artifacts) {
	a.Notes = append(a.Notes, b.Notes...)
	a.Cards = append(a.Cards, b.Cards...)
	a.Schedule = append(a.Schedule, b.Schedule...)
	a.Fun = append(a.Fun, b.Fun...)
	a.Cleared = append(a.Cleared, b.Cleared...)
}

// Empty reports whether no artifacts were produced.
func (a Artifacts) Empty() bool {
	return len(a.Notes) == 0 && len(a.Cards) == 0 && len(a.Schedule) == 0 &&
		len(a.Fun) == 0 && len(a.Cleared) == 0
}

// AgentResult is the outcome of one dispatched action. Failures are data:
// Err carries the reason and OK is false, but the result never surfaces as
// a Go error to the caller.
type AgentResult struct {
	Action    task.Action `json:"action"`
	OK        bool        `json:"ok"`
	Message   string      `json:"message,omitempty"`
	Err       string      `json:"error,omitempty"`
	Artifacts Artifacts   `json:"artifacts"`
}

// Result is the merged outcome of one processed request.
type Result struct {
	Summary    string          `json:"summary"`
	Normalized textnorm.Result `json:"normalized"`
	Plan       task.Plan       `json:"plan"`
	Artifacts  Artifacts       `json:"artifacts"`
	PerAction  []AgentResult   `json:"per_action"`
}

func failure(action task.Action, err error) AgentResult {
	return AgentResult{Action: action, OK: false, Err: err.Error()}
}
