// Package model describes a filesystem around two observed paths and the
// commands that mutate it.
//
// Every type here is a value. Nodes and filesystems are copied on assignment,
// so an enumerated instance can be handed to a command without corrupting the
// next iteration of the enumeration.
package model

import "iter"

// Kind is the kind of thing present at a path
type Kind int

const (
	KindEmpty Kind = iota
	KindFile
	KindDir
)

// unknownValue is reported as the value of every empty content
const unknownValue = "Unknown"

// String returns the display name of the kind
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindFile:
		return "File"
	case KindDir:
		return "Dir"
	default:
		return "Kind(?)"
	}
}

// Kinds yields every kind in canonical order
func Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for _, k := range []Kind{KindEmpty, KindFile, KindDir} {
			if !yield(k) {
				return
			}
		}
	}
}

// Content is the kind and opaque identity of whatever occupies a path
type Content struct {
	kind  Kind
	value string
}

// NewContent creates content of the given kind
func NewContent(kind Kind, value string) Content {
	return Content{kind: kind, value: value}
}

// EmptyContent returns the content of an unoccupied path
func EmptyContent() Content {
	return Content{kind: KindEmpty, value: unknownValue}
}

// Kind returns the kind of the content
func (c Content) Kind() Kind { return c.kind }

// IsEmpty reports whether nothing occupies the path
func (c Content) IsEmpty() bool { return c.kind == KindEmpty }

// IsFile reports whether the content is a file
func (c Content) IsFile() bool { return c.kind == KindFile }

// IsDir reports whether the content is a directory
func (c Content) IsDir() bool { return c.kind == KindDir }

// Value returns the identity of the content. Empty content has no identity
// and always reports "Unknown".
func (c Content) Value() string {
	if c.IsEmpty() {
		return unknownValue
	}
	return c.value
}

// Same reports whether both contents have the same kind and identity
func (c Content) Same(other Content) bool {
	return c.kind == other.kind && c.Value() == other.Value()
}

// Contents yields one representative per kind, tagged with value.
// Kind plus tag is a complete equivalence class for the command algebra.
func Contents(value string) iter.Seq[Content] {
	return func(yield func(Content) bool) {
		for k := range Kinds() {
			if !yield(NewContent(k, value)) {
				return
			}
		}
	}
}
