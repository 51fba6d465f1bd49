// Package task defines the structured actions derived from a free-form
// study request and their aggregation into an ordered plan.
package task

import (
	"encoding"
	"fmt"
)

// Verb is the kind of operation an action performs.
type Verb int

const (
	Create Verb = iota + 1
	Delete
	Update
)

var verbNames = [...]string{Create: "create", Delete: "delete", Update: "update"}

var verbByName = map[string]Verb{
	"create": Create,
	"delete": Delete,
	"update": Update,
}

// Target is the content domain an action operates on.
type Target int

const (
	Notes Target = iota + 1
	Flashcards
	Schedule
	Fun

	// All stands for every known target. It is only meaningful on
	// Delete and Update actions and is expanded during aggregation.
	All
)

var targetNames = [...]string{Notes: "notes", Flashcards: "flashcards", Schedule: "schedule", Fun: "fun", All: "all"}

var targetByName = map[string]Target{
	"notes":      Notes,
	"flashcards": Flashcards,
	"schedule":   Schedule,
	"fun":        Fun,
	"all":        All,
}

// KnownTargets lists the concrete domains in their canonical order.
// Delete/Update actions on All expand in this order.
var KnownTargets = [...]Target{Notes, Flashcards, Schedule, Fun}

var (
	_ fmt.Stringer             = Verb(0)
	_ encoding.TextMarshaler   = Verb(0)
	_ encoding.TextUnmarshaler = (*Verb)(nil)
	_ fmt.Stringer             = Target(0)
	_ encoding.TextMarshaler   = Target(0)
	_ encoding.TextUnmarshaler = (*Target)(nil)
)

// String returns the lowercase name of the verb, or "verb(n)" if invalid.
func (v Verb) String() string {
	if v >= Create && v <= Update {
		return verbNames[v]
	}
	return fmt.Sprintf("verb(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v Verb) MarshalText() ([]byte, error) {
	if v < Create || v > Update {
		return nil, fmt.Errorf("task: invalid verb: %d", int(v))
	}
	return []byte(verbNames[v]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verb) UnmarshalText(text []byte) error {
	w, ok := verbByName[string(text)]
	if !ok {
		return fmt.Errorf("task: invalid verb: %q", text)
	}
	*v = w
	return nil
}

// String returns the lowercase name of the target, or "target(n)" if invalid.
func (t Target) String() string {
	if t >= Notes && t <= All {
		return targetNames[t]
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	if t < Notes || t > All {
		return nil, fmt.Errorf("task: invalid target: %d", int(t))
	}
	return []byte(targetNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(text []byte) error {
	u, ok := targetByName[string(text)]
	if !ok {
		return fmt.Errorf("task: invalid target: %q", text)
	}
	*t = u
	return nil
}

// Action is one structured instruction derived from a request clause.
// Count is always >= 1 on Create actions and carries no meaning on
// Delete/Update.
type Action struct {
	Verb   Verb   `json:"verb"`
	Target Target `json:"target"`
	Topic  string `json:"topic,omitempty"`
	Count  int    `json:"count"`
}
