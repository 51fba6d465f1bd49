// Package orchestrator turns one line of free-form study-request text into
// dispatched content actions and a single merged report. The pipeline is
// strict: the full plan is built before any agent runs, agents fail in
// isolation, and results keep plan order regardless of completion order.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quillview/studycore/internal/lexicon"
	"github.com/quillview/studycore/internal/parse"
	"github.com/quillview/studycore/internal/segment"
	"github.com/quillview/studycore/internal/task"
	"github.com/quillview/studycore/internal/textnorm"
)

const defaultConcurrency = 4

// Options configures an Orchestrator. Zero values fall back to the default
// lexicon, edit-distance matching, an empty registry, a no-op logger, and
// a small dispatch concurrency bound.
type Options struct {
	Lexicon     *lexicon.Lexicon
	Matcher     textnorm.Matcher
	Registry    Registry
	Logger      *zap.Logger
	Concurrency int
}

// Orchestrator is the single entry point for free-form requests. Build it
// once; it is immutable and safe for concurrent use.
type Orchestrator struct {
	norm        *textnorm.Normalizer
	seg         *segment.Segmenter
	ext         *parse.Extractor
	reg         Registry
	log         *zap.Logger
	concurrency int
}

// New creates an Orchestrator from the given options.
func New(opts Options) *Orchestrator {
	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Orchestrator{
		norm:        textnorm.New(lex, opts.Matcher),
		seg:         segment.New(lex),
		ext:         parse.New(lex),
		reg:         opts.Registry,
		log:         log,
		concurrency: concurrency,
	}
}

// ProcessRequest runs the full pipeline on one raw request: normalize,
// segment, extract, aggregate, dispatch, merge. It never returns an error:
// unrecognized input yields a guidance summary and agent failures are
// recorded per action.
func (o *Orchestrator) ProcessRequest(ctx context.Context, text string) Result {
	normalized := o.norm.Normalize(text)
	o.log.Debug("request normalized",
		zap.String("text", normalized.Text),
		zap.Int("corrections", len(normalized.Corrections)))

	clauses := o.seg.Split(normalized.Text)

	var actions []task.Action
	var prev task.Verb
	for _, clause := range clauses {
		action, ok := o.ext.Extract(clause, prev)
		if !ok {
			o.log.Debug("clause dropped", zap.String("clause", clause))
			continue
		}
		actions = append(actions, action)
		prev = action.Verb
	}

	// nil present: All expands to every domain. Deleting an empty domain
	// is a no-op in every sink, so probing the store first buys nothing.
	plan := task.Aggregate(actions, nil)
	result := Result{Normalized: normalized, Plan: plan}

	if plan.Empty() {
		result.Summary = "No study actions recognized. Try something like " +
			`"10 flashcards of react" or "delete all notes".`
		return result
	}

	o.log.Info("dispatching plan", zap.Int("actions", len(plan.Actions)))
	result.PerAction = o.dispatch(ctx, plan)

	for _, r := range result.PerAction {
		result.Artifacts.merge(r.Artifacts)
		if !r.OK {
			o.log.Warn("action failed",
				zap.Stringer("verb", r.Action.Verb),
				zap.Stringer("target", r.Action.Target),
				zap.String("error", r.Err))
		}
	}
	result.Summary = summarize(result.PerAction)
	return result
}

// dispatch runs every planned action. Actions run concurrently up to the
// configured bound, but the returned slice follows plan order, not
// completion order. A missing capability or a failed agent is recorded in
// its slot and never stops sibling actions.
func (o *Orchestrator) dispatch(ctx context.Context, plan task.Plan) []AgentResult {
	results := make([]AgentResult, len(plan.Actions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, action := range plan.Actions {
		g.Go(func() error {
			agent, ok := o.reg.Lookup(Capability{action.Verb, action.Target})
			if !ok {
				results[i] = failure(action,
					fmt.Errorf("no agent registered for %s %s", action.Verb, action.Target))
				return nil
			}
			results[i] = agent.Run(ctx, action)
			return nil
		})
	}
	g.Wait()

	return results
}

// summarize builds the human-readable report. Every domain touched is
// named, prefixed with its canonical noun, so callers can match on domain
// substrings.
func summarize(results []AgentResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		switch {
		case r.OK:
			parts = append(parts, fmt.Sprintf("%s: %s", r.Action.Target, r.Message))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s %s failed (%s)",
				r.Action.Target, r.Action.Verb, r.Action.Target, r.Err))
		}
	}
	return strings.Join(parts, "; ")
}
