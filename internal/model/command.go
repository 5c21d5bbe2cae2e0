package model

import "iter"

// Command replaces the content of one path, provided the current content
// has the expected starting kind.
type Command struct {
	path  Path
	start Kind
	end   Content
}

// NewCommand creates a command
func NewCommand(path Path, start Kind, end Content) Command {
	return Command{path: path, start: start, end: end}
}

// Path returns the path the command targets
func (c Command) Path() Path { return c.path }

// Start returns the kind the command expects to find
func (c Command) Start() Kind { return c.start }

// End returns the content the command leaves behind
func (c Command) End() Content { return c.end }

// ApplyToNode applies the command to n. A node whose content does not match
// the starting kind is broken and keeps its content.
func (c Command) ApplyToNode(n *Node) {
	if n.Content().Kind() != c.start {
		n.fail(ReasonCommandStart)
		return
	}
	n.SetContent(c.end)
}

// Commands yields every command on path whose new content is tagged with value
func Commands(path Path, value string) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		for start := range Kinds() {
			for end := range Contents(value) {
				if !yield(NewCommand(path, start, end)) {
					return
				}
			}
		}
	}
}
