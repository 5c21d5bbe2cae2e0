package prove

import (
	"github.com/schaermu/fsprove/internal/model"
)

// Verdict is the rule found for a command pair
type Verdict int

const (
	// VerdictBreak means the pair breaks every filesystem
	VerdictBreak Verdict = iota
	// VerdictSimplify means one command is equivalent to the pair
	VerdictSimplify
	// VerdictSimplifyExtend means one command extends the domain of the pair
	VerdictSimplifyExtend
	// VerdictReverse means the pair can be applied in reverse order
	VerdictReverse
	// VerdictReverseExtend means the reversed pair extends the domain of the pair
	VerdictReverseExtend
	// VerdictNoRule means the pair is an irreducible primitive
	VerdictNoRule
)

var verdictNames = []string{
	VerdictBreak:          "break",
	VerdictSimplify:       "simplify",
	VerdictSimplifyExtend: "simplify-extend",
	VerdictReverse:        "reverse",
	VerdictReverseExtend:  "reverse-extend",
	VerdictNoRule:         "no-rule",
}

// Verdicts lists every verdict in report order
var Verdicts = []Verdict{
	VerdictBreak,
	VerdictSimplify,
	VerdictSimplifyExtend,
	VerdictReverse,
	VerdictReverseExtend,
	VerdictNoRule,
}

// String returns the name of the verdict
func (v Verdict) String() string {
	if v < 0 || int(v) >= len(verdictNames) {
		return "unknown"
	}
	return verdictNames[v]
}

// Exact reports whether the replacement has the same outcome everywhere,
// as opposed to generalizing outcomes that were broken.
func (v Verdict) Exact() bool {
	return v == VerdictSimplify || v == VerdictReverse
}

// Finding is one rule that holds for a pair
type Finding struct {
	Verdict Verdict
	// Command is the replacement for simplification verdicts
	Command model.Command
	// Reversed is the replacement for reversal verdicts
	Reversed model.CommandPair
}

// Result holds the findings for one command pair. A pair has a single
// finding unless several commands simplify it.
type Result struct {
	Pair     model.CommandPair
	Findings []Finding
}

// Verdict returns the verdict of the first finding
func (r Result) Verdict() Verdict {
	if len(r.Findings) == 0 {
		return VerdictNoRule
	}
	return r.Findings[0].Verdict
}

// Summary counts pairs per verdict
type Summary struct {
	Pairs    int
	Verdicts map[Verdict]int
}

func (s *Summary) add(r Result) {
	if s.Verdicts == nil {
		s.Verdicts = make(map[Verdict]int)
	}
	s.Pairs++
	s.Verdicts[r.Verdict()]++
}

// LogArgs returns the summary as slog key/value pairs
func (s Summary) LogArgs() []any {
	args := []any{"pairs", s.Pairs}
	for _, v := range Verdicts {
		args = append(args, v.String(), s.Verdicts[v])
	}
	return args
}
