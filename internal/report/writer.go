package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/schaermu/fsprove/internal/prove"
)

// Format selects how results are written
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// Writer writes classification results in a fixed format
type Writer struct {
	out    io.Writer
	format Format
	enc    *yaml.Encoder
}

// yamlResult is the YAML document written for one pair
type yamlResult struct {
	Pair         string     `yaml:"pair"`
	Relationship string     `yaml:"relationship"`
	Rules        []yamlRule `yaml:"rules"`
}

type yamlRule struct {
	Verdict     string `yaml:"verdict"`
	Replacement string `yaml:"replacement,omitempty"`
}

// NewWriter creates a writer for format
func NewWriter(out io.Writer, format Format) (*Writer, error) {
	w := &Writer{out: out, format: format}
	switch format {
	case FormatText:
	case FormatYAML:
		w.enc = yaml.NewEncoder(out)
		w.enc.SetIndent(2)
	default:
		return nil, fmt.Errorf("unknown report format: %s (must be text or yaml)", format)
	}
	return w, nil
}

// Write writes the findings for one pair
func (w *Writer) Write(r prove.Result) error {
	if w.enc != nil {
		return w.enc.Encode(toYAML(r))
	}
	for _, line := range Lines(r) {
		if _, err := fmt.Fprintln(w.out, line); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes any buffered output. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.enc != nil {
		return w.enc.Close()
	}
	return nil
}

func toYAML(r prove.Result) yamlResult {
	doc := yamlResult{
		Pair:         Pair(r.Pair),
		Relationship: r.Pair.Relationship().String(),
		Rules:        make([]yamlRule, 0, len(r.Findings)),
	}
	for _, f := range r.Findings {
		rule := yamlRule{Verdict: f.Verdict.String()}
		switch f.Verdict {
		case prove.VerdictSimplify, prove.VerdictSimplifyExtend:
			rule.Replacement = Command(f.Command)
		case prove.VerdictReverse, prove.VerdictReverseExtend:
			rule.Replacement = Pair(f.Reversed)
		}
		doc.Rules = append(doc.Rules, rule)
	}
	return doc
}
