package srs

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestInit(t *testing.T) {
	s := Init(t0)

	if s.Repetitions != 0 || s.IntervalDays != 0 {
		t.Fatalf("state = %+v", s)
	}
	if s.EaseFactor != 2.5 {
		t.Fatalf("ease = %v, want 2.5", s.EaseFactor)
	}
	if !s.IsDue(t0) {
		t.Fatal("new card should be immediately due")
	}
}

func TestIsDue(t *testing.T) {
	s := Init(t0)

	if s.IsDue(t0.Add(-time.Minute)) {
		t.Error("card due before creation")
	}
	if !s.IsDue(t0.Add(time.Minute)) {
		t.Error("card not due after creation")
	}
}

func TestReview_FailResets(t *testing.T) {
	s := Init(t0)
	s = Review(s, Good, t0)
	s = Review(s, Good, t0.Add(24*time.Hour))

	failed := Review(s, Again, t0.Add(7*24*time.Hour))
	if failed.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", failed.Repetitions)
	}
	if failed.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", failed.IntervalDays)
	}
	if failed.EaseFactor > s.EaseFactor {
		t.Errorf("ease increased on failure: %v -> %v", s.EaseFactor, failed.EaseFactor)
	}
}

func TestReview_AgainNotDueTwelveHoursLater(t *testing.T) {
	s := Review(Init(t0), Again, t0)

	if s.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", s.Repetitions)
	}
	if s.IsDue(t0.Add(12 * time.Hour)) {
		t.Error("card due 12 hours after a failed review")
	}
	if !s.IsDue(t0.Add(24 * time.Hour)) {
		t.Error("card not due one day after a failed review")
	}
}

func TestReview_SuccessLadder(t *testing.T) {
	s := Init(t0)

	s = Review(s, Good, t0)
	if s.Repetitions != 1 || s.IntervalDays != 1 {
		t.Fatalf("after first success: %+v", s)
	}

	s = Review(s, Good, t0.Add(24*time.Hour))
	if s.Repetitions != 2 {
		t.Fatalf("after second success: %+v", s)
	}
	if s.IntervalDays < 3 {
		t.Fatalf("interval = %d, want >= 3", s.IntervalDays)
	}

	prev := s.IntervalDays
	s = Review(s, Good, t0.Add(7*24*time.Hour))
	if s.Repetitions != 3 {
		t.Fatalf("after third success: %+v", s)
	}
	if s.IntervalDays <= prev {
		t.Fatalf("interval = %d, want > %d", s.IntervalDays, prev)
	}
}

func TestReview_EasyBeatsGood(t *testing.T) {
	states := []State{
		Init(t0),
		Review(Init(t0), Good, t0),
		Review(Init(t0), Again, t0),
	}
	for _, s := range states {
		easy := Review(s, Easy, t0)
		good := Review(s, Good, t0)
		if easy.EaseFactor < good.EaseFactor {
			t.Errorf("easy ease %v < good ease %v from %+v", easy.EaseFactor, good.EaseFactor, s)
		}
	}
}

func TestReview_EaseFloor(t *testing.T) {
	s := Init(t0)
	for i := 0; i < 20; i++ {
		s = Review(s, Again, t0)
	}
	if s.EaseFactor < 1.3 {
		t.Fatalf("ease = %v, below floor", s.EaseFactor)
	}
	if math.Abs(s.EaseFactor-1.3) > 1e-9 {
		t.Fatalf("ease = %v, want pinned at 1.3", s.EaseFactor)
	}
}

func TestReview_HardCountsAsFailure(t *testing.T) {
	s := Review(Init(t0), Good, t0)
	s = Review(s, Hard, t0.Add(24*time.Hour))

	if s.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0", s.Repetitions)
	}
	if s.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", s.IntervalDays)
	}
}

func TestReview_InputNotMutated(t *testing.T) {
	s := Init(t0)
	before := s
	Review(s, Easy, t0)
	if s != before {
		t.Fatalf("input state mutated: %+v", s)
	}
}

func TestReview_PanicsOnInvalidQuality(t *testing.T) {
	for _, q := range []Quality{1, 5, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Review(%d) did not panic", int(q))
				}
			}()
			Review(Init(t0), q, t0)
		}()
	}
}
