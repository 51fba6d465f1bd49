// Package srs implements the spaced-repetition scheduler for flashcard
// review. It is a pure numeric state machine in the SM-2 family: given a
// card's scheduling state and a review grade, it computes the next due
// date, interval, and ease factor. All functions are pure and safe for
// concurrent use.
package srs

import (
	"math"
	"time"
)

const (
	// baselineEase is the ease factor assigned to new cards.
	baselineEase = 2.5

	// minEase is the floor applied to every ease update.
	minEase = 1.3

	// failIntervalDays is the interval after a failed review.
	failIntervalDays = 1

	// secondIntervalDays is the interval after the second consecutive
	// successful review.
	secondIntervalDays = 6
)

// State is the scheduling state of one flashcard. A zero State is not
// valid; obtain one from Init.
type State struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetitions  int       `json:"repetitions"`
	DueAt        time.Time `json:"due_at"`
}

// Init returns the state of a freshly created card: immediately due, with
// the baseline ease factor.
func Init(now time.Time) State {
	return State{
		EaseFactor:   baselineEase,
		IntervalDays: 0,
		Repetitions:  0,
		DueAt:        now,
	}
}

// IsDue reports whether the card is due for review at the given time.
func (s State) IsDue(now time.Time) bool {
	return !now.Before(s.DueAt)
}

// Review applies one graded review and returns the next state. The input
// state is not mutated.
//
// A failing grade (Again, Hard) resets the repetition streak, schedules
// the card one day out, and lowers the ease factor. A passing grade
// (Good, Easy) extends the streak: the first success schedules one day
// out, the second six days, and later successes multiply the prior
// interval by the updated ease factor. The ease factor never drops below
// 1.3 and a passing Easy always lands at or above a passing Good from the
// same starting state.
//
// Review panics on an invalid quality: that is a caller contract
// violation, not a data condition.
func Review(s State, q Quality, now time.Time) State {
	if !q.IsValid() {
		panic("srs: invalid review quality: " + q.String())
	}

	next := s
	next.EaseFactor = math.Max(minEase, s.EaseFactor+easeDelta(q))

	if q < Good {
		next.Repetitions = 0
		next.IntervalDays = failIntervalDays
	} else {
		next.Repetitions = s.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = secondIntervalDays
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * next.EaseFactor))
			if next.IntervalDays <= s.IntervalDays {
				next.IntervalDays = s.IntervalDays + 1
			}
		}
	}

	next.DueAt = now.Add(time.Duration(next.IntervalDays) * 24 * time.Hour)
	return next
}

// easeDelta is the classic SM-2 ease adjustment,
// 0.1 - (5-q)*(0.08 + (5-q)*0.02), monotonically increasing in q.
func easeDelta(q Quality) float64 {
	miss := float64(5 - q)
	return 0.1 - miss*(0.08+miss*0.02)
}
