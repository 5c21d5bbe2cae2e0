package model

import "iter"

// Reason records why a node is broken. The zero value means valid.
type Reason string

const (
	ReasonConstructor      Reason = "Constructor"
	ReasonNonEmptyNoParent Reason = "tree-nonempty-noparent"
	ReasonNotDirHasChild   Reason = "tree-notdir-haschild"
	ReasonAssertChild      Reason = "assert-child"
	ReasonAssertNoChild    Reason = "assert-no-child"
	ReasonAssertParent     Reason = "assert-parent"
	ReasonAssertNoParent   Reason = "assert-no-parent"
	ReasonCommandStart     Reason = "command-start"
)

// Node is the locally observable environment of one path.
//
// A broken node represents an impossible configuration. It stays broken for
// the rest of its life; only its reason may be replaced by a later failure.
type Node struct {
	hasParent bool
	content   Content
	hasChild  bool
	broken    Reason
}

// NewNode creates a node and checks the local tree invariant
func NewNode(hasParent bool, content Content, hasChild bool) Node {
	n := Node{hasParent: hasParent, content: content, hasChild: hasChild}
	n.CheckTree()
	return n
}

// BrokenNode returns the designated broken representative
func BrokenNode() Node {
	return Node{content: EmptyContent(), broken: ReasonConstructor}
}

// HasParent reports whether the parent of the path exists
func (n Node) HasParent() bool { return n.hasParent }

// HasChild reports whether the path has at least one child
func (n Node) HasChild() bool { return n.hasChild }

// Content returns what occupies the path
func (n Node) Content() Content { return n.content }

// Broken reports whether the node is broken
func (n Node) Broken() bool { return n.broken != "" }

// Reason returns why the node is broken, or "" if it is valid
func (n Node) Reason() Reason { return n.broken }

// Clone returns an independent copy of the node
func (n Node) Clone() Node { return n }

// Same reports structural equality. All broken nodes are the same.
func (n Node) Same(other Node) bool {
	if n.Broken() && other.Broken() {
		return true
	}
	if n.Broken() || other.Broken() {
		return false
	}
	return n.hasParent == other.hasParent &&
		n.hasChild == other.hasChild &&
		n.content.Same(other.content)
}

// SetContent replaces the content and re-checks the tree invariant
func (n *Node) SetContent(c Content) {
	n.content = c
	n.CheckTree()
}

// SetHasChild sets the child flag and re-checks the tree invariant
func (n *Node) SetHasChild(v bool) {
	n.hasChild = v
	n.CheckTree()
}

// SetHasParent sets the parent flag and re-checks the tree invariant
func (n *Node) SetHasParent(v bool) {
	n.hasParent = v
	n.CheckTree()
}

// CheckTree breaks the node if its flags contradict its content
func (n *Node) CheckTree() {
	if reason, ok := n.treeViolation(); ok {
		n.fail(reason)
	}
}

// treeViolation returns the last local rule the node violates.
// Later rules take precedence over earlier ones.
func (n Node) treeViolation() (Reason, bool) {
	var reason Reason
	if !n.content.IsEmpty() && !n.hasParent {
		reason = ReasonNonEmptyNoParent
	}
	if n.hasChild && !n.content.IsDir() {
		reason = ReasonNotDirHasChild
	}
	return reason, reason != ""
}

// fail records a failure. The most recent failure replaces any earlier reason.
func (n *Node) fail(reason Reason) {
	n.broken = reason
}

// AssertDescendant breaks the node unless it is a directory with a child
func (n *Node) AssertDescendant() {
	if !n.hasChild || !n.content.IsDir() {
		n.fail(ReasonAssertChild)
	}
}

// AssertNoDescendants breaks the node if it has a child
func (n *Node) AssertNoDescendants() {
	if n.hasChild {
		n.fail(ReasonAssertNoChild)
	}
}

// AssertParent breaks the node if its parent does not exist
func (n *Node) AssertParent() {
	if !n.hasParent {
		n.fail(ReasonAssertParent)
	}
}

// AssertNoParent breaks the node if its parent exists
func (n *Node) AssertNoParent() {
	if n.hasParent {
		n.fail(ReasonAssertNoParent)
	}
}

// Nodes yields the designated broken node followed by every locally valid
// environment of a path whose content is tagged with value.
func Nodes(value string) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if !yield(BrokenNode()) {
			return
		}
		for _, hasParent := range []bool{false, true} {
			for content := range Contents(value) {
				for _, hasChild := range []bool{false, true} {
					n := NewNode(hasParent, content, hasChild)
					if n.Broken() {
						continue
					}
					if !yield(n) {
						return
					}
				}
			}
		}
	}
}
