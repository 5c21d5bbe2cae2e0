// Package report renders model values and classification results.
package report

import (
	"fmt"
	"strings"

	"github.com/schaermu/fsprove/internal/model"
	"github.com/schaermu/fsprove/internal/prove"
)

// Content renders content as Kind or Kind(value)
func Content(c model.Content) string {
	if c.IsEmpty() {
		return c.Kind().String()
	}
	return fmt.Sprintf("%s(%s)", c.Kind(), c.Value())
}

// Node renders the environment of a path, e.g. (o--Dir(Old1)--o).
// Broken nodes render as (Broken) unless debug is set.
func Node(n model.Node, debug bool) string {
	var b strings.Builder
	b.WriteString("(")
	if n.Broken() {
		if !debug {
			return "(Broken)"
		}
		fmt.Fprintf(&b, "Broken(%s) ", n.Reason())
	}
	if n.HasParent() {
		b.WriteString("o--")
	}
	b.WriteString(Content(n.Content()))
	if n.HasChild() {
		b.WriteString("--o")
	}
	b.WriteString(")")
	return b.String()
}

// Filesystem renders both nodes joined by a relationship connector.
// Parent relationships put p2 first.
func Filesystem(f model.Filesystem, debug bool) string {
	if f.Broken() && !debug {
		return "[Broken]"
	}
	p1, p2 := Node(f.P1(), debug), Node(f.P2(), debug)
	switch f.Relationship() {
	case model.DirectChild:
		return p1 + " ===<> " + p2
	case model.DirectChildOnly:
		return p1 + " ===>> " + p2
	case model.DirectParent:
		return p2 + " ~~~<> " + p1
	case model.DirectParentOnly:
		return p2 + " ~~~>> " + p1
	default:
		return p1 + " ==x== " + p2
	}
}

// Command renders a command as {path:start>end}
func Command(c model.Command) string {
	return fmt.Sprintf("{%s:%s>%s}", c.Path(), c.Start(), Content(c.End()))
}

var pairConnectors = map[model.Relationship]string{
	model.Separate:         " -x- ",
	model.DirectChild:      " -<> ",
	model.DirectChildOnly:  " ->> ",
	model.DirectParent:     " <>- ",
	model.DirectParentOnly: " <<- ",
	model.Same:             " --- ",
}

// Pair renders both commands joined by a relationship connector
func Pair(p model.CommandPair) string {
	return Command(p.First()) + pairConnectors[p.Relationship()] + Command(p.Second())
}

// Rule renders the right-hand side of a finding
func Rule(f prove.Finding) string {
	switch f.Verdict {
	case prove.VerdictBreak:
		return "== break"
	case prove.VerdictSimplify:
		return "== " + Command(f.Command)
	case prove.VerdictSimplifyExtend:
		return "=[ " + Command(f.Command)
	case prove.VerdictReverse:
		return "== " + Pair(f.Reversed)
	case prove.VerdictReverseExtend:
		return "=[ " + Pair(f.Reversed)
	default:
		return "(no rule)"
	}
}

// Lines renders one report line per finding
func Lines(r prove.Result) []string {
	pair := Pair(r.Pair)
	lines := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		lines = append(lines, pair+" \t"+Rule(f))
	}
	return lines
}
