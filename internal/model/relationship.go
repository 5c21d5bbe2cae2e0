package model

import (
	"fmt"
	"iter"
	"strings"
)

// Relationship is the structural adjacency between the two observed paths
type Relationship int

const (
	// Separate paths do not affect each other's flags
	Separate Relationship = iota
	// DirectChild means p2 is a direct child of p1
	DirectChild
	// DirectChildOnly means p2 is the only child of p1
	DirectChildOnly
	// DirectParent means p2 is the direct parent of p1
	DirectParent
	// DirectParentOnly means p2 is the parent of p1 and p1 is its only child
	DirectParentOnly
	// Same is only valid on command pairs: both commands target one path
	Same
)

var relationshipNames = map[Relationship]string{
	Separate:         "Separate",
	DirectChild:      "DirectChild",
	DirectChildOnly:  "DirectChildOnly",
	DirectParent:     "DirectParent",
	DirectParentOnly: "DirectParentOnly",
	Same:             "Same",
}

// String returns the name of the relationship
func (r Relationship) String() string {
	if name, ok := relationshipNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Relationship(%d)", int(r))
}

// ParseRelationship converts a relationship name (case-insensitive)
func ParseRelationship(s string) (Relationship, error) {
	for r := range PairRelationships() {
		if strings.EqualFold(r.String(), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown relationship %q", s)
}

// FilesystemRelationships yields the relationships a filesystem can have
func FilesystemRelationships() iter.Seq[Relationship] {
	return func(yield func(Relationship) bool) {
		for _, r := range []Relationship{Separate, DirectChild, DirectChildOnly, DirectParent, DirectParentOnly} {
			if !yield(r) {
				return
			}
		}
	}
}

// PairRelationships yields the relationships a command pair can have
func PairRelationships() iter.Seq[Relationship] {
	return func(yield func(Relationship) bool) {
		for r := range FilesystemRelationships() {
			if !yield(r) {
				return
			}
		}
		yield(Same)
	}
}

// IsChild reports whether p2 is the child of p1
func (r Relationship) IsChild() bool {
	return r == DirectChild || r == DirectChildOnly
}

// IsParent reports whether p2 is the parent of p1
func (r Relationship) IsParent() bool {
	return r == DirectParent || r == DirectParentOnly
}

// IsOnly reports whether the child is the only child of the parent
func (r Relationship) IsOnly() bool {
	return r == DirectChildOnly || r == DirectParentOnly
}

// Reverse returns the relationship seen from the other path
func (r Relationship) Reverse() Relationship {
	switch r {
	case DirectParent:
		return DirectChild
	case DirectParentOnly:
		return DirectChildOnly
	case DirectChild:
		return DirectParent
	case DirectChildOnly:
		return DirectParentOnly
	default:
		return r
	}
}

// ForFilesystem maps a pair relationship to the filesystem relationship it
// is proven against. A single path has no second node to relate, so Same
// pairs are tested on separate filesystems.
func (r Relationship) ForFilesystem() Relationship {
	if r == Same {
		return Separate
	}
	return r
}

// Path names one of the two observed paths
type Path int

const (
	P1 Path = iota + 1
	P2
)

// String returns the name of the path
func (p Path) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	default:
		return fmt.Sprintf("Path(%d)", int(p))
	}
}

// Other returns the path that is not p
func (p Path) Other() Path {
	if p == P1 {
		return P2
	}
	return P1
}
