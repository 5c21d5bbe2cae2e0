package model

import (
	"iter"
	"slices"
)

// Sequence is an ordered list of commands
type Sequence []Command

// Reverse returns a copy of the sequence in reverse order
func (s Sequence) Reverse() Sequence {
	r := slices.Clone(s)
	slices.Reverse(r)
	return r
}

// CommandPair is two commands tagged with the relationship between the paths
// they target. Same means both commands target the first path.
type CommandPair struct {
	first  Command
	second Command
	rel    Relationship
}

// NewCommandPair creates a command pair
func NewCommandPair(first, second Command, rel Relationship) CommandPair {
	return CommandPair{first: first, second: second, rel: rel}
}

// First returns the command applied first
func (p CommandPair) First() Command { return p.first }

// Second returns the command applied last
func (p CommandPair) Second() Command { return p.second }

// Relationship returns the relationship between the targeted paths
func (p CommandPair) Relationship() Relationship { return p.rel }

// Sequence returns the commands in application order
func (p CommandPair) Sequence() Sequence {
	return Sequence{p.first, p.second}
}

// Reverse swaps the commands and describes the relationship from the
// other path.
func (p CommandPair) Reverse() CommandPair {
	return CommandPair{first: p.second, second: p.first, rel: p.rel.Reverse()}
}

// CommandPairs yields every representative pair of commands: all
// combinations on two related paths for each filesystem relationship, then
// all combinations on a single path.
func CommandPairs() iter.Seq[CommandPair] {
	return func(yield func(CommandPair) bool) {
		for rel := range FilesystemRelationships() {
			for c1 := range Commands(P1, "New1") {
				for c2 := range Commands(P2, "New2") {
					if !yield(NewCommandPair(c1, c2, rel)) {
						return
					}
				}
			}
		}
		for c1 := range Commands(P1, "New1") {
			for c2 := range Commands(P1, "New2") {
				if !yield(NewCommandPair(c1, c2, Same)) {
					return
				}
			}
		}
	}
}
