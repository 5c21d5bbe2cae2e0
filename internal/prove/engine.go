// Package prove classifies command pairs against every filesystem the model
// can represent.
package prove

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/schaermu/fsprove/internal/model"
)

// Options configures a classification run
type Options struct {
	// Workers is the number of pairs classified concurrently. Output order
	// does not depend on it.
	Workers int
	// Relationships restricts the run to pairs with these relationships.
	// Empty means all.
	Relationships []model.Relationship
}

// Engine orchestrates the classification of command pairs
type Engine struct {
	logger  *slog.Logger
	workers int
	include map[model.Relationship]bool
}

// NewEngine creates a new classification engine
func NewEngine(logger *slog.Logger, opts Options) *Engine {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var include map[model.Relationship]bool
	if len(opts.Relationships) > 0 {
		include = make(map[model.Relationship]bool, len(opts.Relationships))
		for _, rel := range opts.Relationships {
			include[rel] = true
		}
	}

	return &Engine{
		logger:  logger,
		workers: workers,
		include: include,
	}
}

// Pairs returns the command pairs the engine classifies, in generation order
func (e *Engine) Pairs() []model.CommandPair {
	var pairs []model.CommandPair
	for pair := range model.CommandPairs() {
		if e.include != nil && !e.include[pair.Relationship()] {
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// Run classifies every pair and passes the results to emit in generation order
func (e *Engine) Run(ctx context.Context, emit func(Result) error) (Summary, error) {
	pairs := e.Pairs()
	e.logger.Info("starting classification", "pairs", len(pairs), "workers", e.workers)

	results := make([]Result, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Classify(pair)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("classification interrupted: %w", err)
	}

	var summary Summary
	for _, res := range results {
		summary.add(res)
		if err := emit(res); err != nil {
			return summary, fmt.Errorf("failed to emit result: %w", err)
		}
	}

	e.logger.Info("classification completed", summary.LogArgs()...)
	return summary, nil
}

// Classify finds the rule that holds for pair. The checks run in a fixed
// order and the first one that matches decides the result:
// break, simplification (single-path pairs only), reversal, no rule.
func (e *Engine) Classify(pair model.CommandPair) Result {
	rel := pair.Relationship().ForFilesystem()
	seq := pair.Sequence()
	res := Result{Pair: pair}

	switch {
	case breaksAll(rel, seq):
		res.Findings = []Finding{{Verdict: VerdictBreak}}
	case pair.Relationship() == model.Same:
		res.Findings = simplifications(rel, pair)
		if len(res.Findings) == 0 {
			res.Findings = []Finding{reversal(rel, pair)}
		}
	default:
		res.Findings = []Finding{reversal(rel, pair)}
	}

	e.logger.Debug("classified pair",
		"relationship", pair.Relationship(),
		"verdict", res.Verdict(),
		"findings", len(res.Findings))
	return res
}

// simplifications returns every single command that replaces pair, exactly
// or by extending it
func simplifications(rel model.Relationship, pair model.CommandPair) []Finding {
	var found []Finding
	seq := pair.Sequence()
	last := pair.Second()
	for cmd := range model.Commands(last.Path(), last.End().Value()) {
		same, extended := compare(rel, seq, model.Sequence{cmd})
		switch {
		case same:
			found = append(found, Finding{Verdict: VerdictSimplify, Command: cmd})
		case extended:
			found = append(found, Finding{Verdict: VerdictSimplifyExtend, Command: cmd})
		}
	}
	return found
}

// reversal checks whether the commands of pair can be swapped
func reversal(rel model.Relationship, pair model.CommandPair) Finding {
	rev := pair.Reverse()
	same, extended := compare(rel, pair.Sequence(), rev.Sequence())
	switch {
	case same:
		return Finding{Verdict: VerdictReverse, Reversed: rev}
	case extended:
		return Finding{Verdict: VerdictReverseExtend, Reversed: rev}
	default:
		return Finding{Verdict: VerdictNoRule}
	}
}

// breaksAll reports whether seq breaks every filesystem of rel
func breaksAll(rel model.Relationship, seq model.Sequence) bool {
	for fs := range model.Filesystems(rel) {
		res := fs.Clone()
		res.ApplySequence(seq)
		if !res.Broken() {
			return false
		}
	}
	return true
}

// compare applies seq and alt to copies of every filesystem of rel. same is
// true if the outcomes always match; extended is true if the outcome of alt
// always generalizes the outcome of seq.
func compare(rel model.Relationship, seq, alt model.Sequence) (same, extended bool) {
	same, extended = true, true
	for fs := range model.Filesystems(rel) {
		got := fs.Clone()
		got.ApplySequence(seq)
		want := fs.Clone()
		want.ApplySequence(alt)

		if !got.Same(want) {
			same = false
		}
		if !got.ExtendedBy(want) {
			extended = false
		}
		if !same && !extended {
			return false, false
		}
	}
	return same, extended
}
