package task

// Plan is the deduplicated, ordered list of actions derived from one
// request. Order follows first appearance in the input.
type Plan struct {
	Actions []Action `json:"actions"`
}

// Empty reports whether the plan contains no actions.
func (p Plan) Empty() bool {
	return len(p.Actions) == 0
}

// Aggregate merges raw extracted actions into a plan.
//
// Create actions with the same (target, topic) pair are merged by summing
// their counts into the first occurrence. Delete and Update actions on the
// same target collapse to one. An All-target Delete/Update expands into one
// action per domain in present (in KnownTargets order); a nil or empty
// present expands to every known domain.
//
// present is for callers that know which domains actually hold content,
// e.g. from store counts, so "delete everything" skips empty domains. The
// orchestrator passes nil: clearing an empty domain is a no-op, so it
// expands to all of them unconditionally.
func Aggregate(actions []Action, present []Target) Plan {
	if len(present) == 0 {
		present = KnownTargets[:]
	}

	var plan Plan
	createIdx := map[createKey]int{}
	seen := map[collapseKey]bool{}

	add := func(a Action) {
		switch a.Verb {
		case Create:
			k := createKey{a.Target, a.Topic}
			if i, ok := createIdx[k]; ok {
				plan.Actions[i].Count += a.Count
				return
			}
			createIdx[k] = len(plan.Actions)
			plan.Actions = append(plan.Actions, a)
		default:
			k := collapseKey{a.Verb, a.Target}
			if seen[k] {
				return
			}
			seen[k] = true
			plan.Actions = append(plan.Actions, a)
		}
	}

	for _, a := range actions {
		if a.Verb != Create && a.Target == All {
			for _, t := range orderTargets(present) {
				add(Action{Verb: a.Verb, Target: t, Count: 1})
			}
			continue
		}
		add(a)
	}

	return plan
}

type createKey struct {
	target Target
	topic  string
}

type collapseKey struct {
	verb   Verb
	target Target
}

// orderTargets returns the given domains in KnownTargets order, dropping
// duplicates and the All pseudo-target.
func orderTargets(present []Target) []Target {
	has := map[Target]bool{}
	for _, t := range present {
		has[t] = true
	}
	var out []Target
	for _, t := range KnownTargets {
		if has[t] {
			out = append(out, t)
		}
	}
	return out
}
