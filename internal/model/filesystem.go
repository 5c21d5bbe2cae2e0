package model

import (
	"fmt"
	"iter"
)

// Filesystem models two observed paths joined by a structural relationship
type Filesystem struct {
	p1  Node
	p2  Node
	rel Relationship
}

// NewFilesystem creates a filesystem and checks the cross-node invariant.
// It panics if rel is Same, which only describes command pairs.
func NewFilesystem(p1, p2 Node, rel Relationship) Filesystem {
	if rel == Same {
		panic(fmt.Sprintf("model: %s is not a filesystem relationship", rel))
	}
	f := Filesystem{p1: p1, p2: p2, rel: rel}
	f.CheckTree()
	return f
}

// BrokenFilesystem returns the designated broken representative for rel
func BrokenFilesystem(rel Relationship) Filesystem {
	return NewFilesystem(BrokenNode(), BrokenNode(), rel)
}

// P1 returns the node at the first path
func (f Filesystem) P1() Node { return f.p1 }

// P2 returns the node at the second path
func (f Filesystem) P2() Node { return f.p2 }

// Relationship returns how the two paths relate
func (f Filesystem) Relationship() Relationship { return f.rel }

// Node returns the node at path p
func (f Filesystem) Node(p Path) Node { return *f.node(p) }

// Broken reports whether either node is broken
func (f Filesystem) Broken() bool { return f.p1.Broken() || f.p2.Broken() }

// Clone returns a deep copy of the filesystem
func (f Filesystem) Clone() Filesystem {
	return Filesystem{p1: f.p1.Clone(), p2: f.p2.Clone(), rel: f.rel}
}

// Same reports structural equality. All broken filesystems are the same.
func (f Filesystem) Same(other Filesystem) bool {
	if f.Broken() && other.Broken() {
		return true
	}
	if f.Broken() || other.Broken() {
		return false
	}
	return f.equal(other)
}

// ExtendedBy reports whether other generalizes f: a broken f is extended by
// any outcome, an intact f only by an identical one.
func (f Filesystem) ExtendedBy(other Filesystem) bool {
	if f.Broken() {
		return true
	}
	if other.Broken() {
		return false
	}
	return f.equal(other)
}

func (f Filesystem) equal(other Filesystem) bool {
	return f.p1.Same(other.p1) && f.p2.Same(other.p2) && f.rel == other.rel
}

func (f *Filesystem) node(p Path) *Node {
	if p == P1 {
		return &f.p1
	}
	return &f.p2
}

// roles returns which path is the parent and which is the child.
// ok is false for separate paths.
func roles(rel Relationship) (parent, child Path, ok bool) {
	switch {
	case rel.IsChild():
		return P1, P2, true
	case rel.IsParent():
		return P2, P1, true
	default:
		return 0, 0, false
	}
}

// CheckTree breaks nodes whose flags contradict the relationship
func (f *Filesystem) CheckTree() {
	parentPath, childPath, ok := roles(f.rel)
	if !ok {
		return
	}
	parent, child := f.node(parentPath), f.node(childPath)

	if !child.Content().IsEmpty() {
		parent.AssertDescendant()
	}

	if !parent.Content().IsEmpty() {
		child.AssertParent()
	} else {
		child.AssertNoParent()
	}

	if f.rel.IsOnly() && child.Content().IsEmpty() {
		parent.AssertNoDescendants()
	}
}

// ApplyCommand applies cmd to the node on its path, first updating the flags
// the command changes on the other path.
func (f *Filesystem) ApplyCommand(cmd Command) {
	target := f.node(cmd.Path())
	end := cmd.End()

	if parentPath, childPath, ok := roles(f.rel); ok {
		var adjusted *Node
		switch cmd.Path() {
		case childPath:
			adjusted = f.node(parentPath)
			// A child with content means the parent has a child
			if !end.IsEmpty() {
				adjusted.SetHasChild(true)
			}
			// Deleting the only child leaves the parent childless
			if f.rel.IsOnly() && end.IsEmpty() {
				adjusted.SetHasChild(false)
			}
		case parentPath:
			adjusted = f.node(childPath)
			adjusted.SetHasParent(!end.IsEmpty())
		}
		if adjusted == target {
			panic(fmt.Sprintf("model: command on %s adjusted its own node", cmd.Path()))
		}
	}

	cmd.ApplyToNode(target)
	f.CheckTree()
}

// ApplySequence applies every command of seq in order
func (f *Filesystem) ApplySequence(seq Sequence) {
	for _, cmd := range seq {
		f.ApplyCommand(cmd)
	}
}

// Filesystems yields the designated broken filesystem followed by every
// valid combination of node environments for rel. Nodes are tagged "Old1"
// and "Old2" so that identity mix-ups between paths stay observable.
func Filesystems(rel Relationship) iter.Seq[Filesystem] {
	return func(yield func(Filesystem) bool) {
		if !yield(BrokenFilesystem(rel)) {
			return
		}
		for p1 := range Nodes("Old1") {
			for p2 := range Nodes("Old2") {
				f := NewFilesystem(p1, p2, rel)
				if f.Broken() {
					continue
				}
				if !yield(f) {
					return
				}
			}
		}
	}
}
