package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/errors"

	"github.com/schaermu/fsprove/internal/model"
	"github.com/schaermu/fsprove/internal/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
report:
  format: yaml
  output: "/tmp/rules.yaml"

render:
  debug: true

classify:
  workers: 4
  relationships:
    - Same
    - DirectChildOnly
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Report.Format != report.FormatYAML {
		t.Errorf("expected format yaml, got %s", cfg.Report.Format)
	}
	if cfg.Report.Output != "/tmp/rules.yaml" {
		t.Errorf("expected output /tmp/rules.yaml, got %s", cfg.Report.Output)
	}
	if !cfg.Render.Debug {
		t.Error("expected render.debug to be true")
	}
	if cfg.Classify.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Classify.Workers)
	}
	if len(cfg.Classify.Relationships) != 2 {
		t.Errorf("expected 2 relationships, got %v", cfg.Classify.Relationships)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "render:\n  debug: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Report.Format != report.FormatText {
		t.Errorf("expected default format text, got %s", cfg.Report.Format)
	}
	if cfg.Classify.Workers != 1 {
		t.Errorf("expected default of 1 worker, got %d", cfg.Classify.Workers)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode errors.ErrorCode
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantCode: errors.CodeNotFound,
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string {
				return writeConfig(t, "report: [unterminated\n")
			},
			wantCode: errors.CodeInvalidInput,
		},
		{
			name: "invalid format",
			path: func(t *testing.T) string {
				return writeConfig(t, "report:\n  format: xml\n")
			},
			wantCode: errors.CodeInvalidInput,
		},
		{
			name: "unknown relationship",
			path: func(t *testing.T) string {
				return writeConfig(t, "classify:\n  relationships: [Grandparent]\n")
			},
			wantCode: errors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("GetCode() = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "defaults",
			cfg:     *Default(),
			wantErr: false,
		},
		{
			name: "yaml with relationships",
			cfg: Config{
				Report:   ReportConfig{Format: report.FormatYAML},
				Classify: ClassifyConfig{Workers: 8, Relationships: []string{"Separate", "same"}},
			},
			wantErr: false,
		},
		{
			name: "unknown format",
			cfg: Config{
				Report:   ReportConfig{Format: "json"},
				Classify: ClassifyConfig{Workers: 1},
			},
			wantErr: true,
		},
		{
			name: "zero workers",
			cfg: Config{
				Report: ReportConfig{Format: report.FormatText},
			},
			wantErr: true,
		},
		{
			name: "negative workers",
			cfg: Config{
				Report:   ReportConfig{Format: report.FormatText},
				Classify: ClassifyConfig{Workers: -2},
			},
			wantErr: true,
		},
		{
			name: "unknown relationship",
			cfg: Config{
				Report:   ReportConfig{Format: report.FormatText},
				Classify: ClassifyConfig{Workers: 1, Relationships: []string{"Cousin"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	if cfg.Report.Format != report.FormatText {
		t.Errorf("applyDefaults() did not set format, got %q, want %q", cfg.Report.Format, report.FormatText)
	}

	// Explicit values must not be overwritten
	cfg2 := Config{
		Report:   ReportConfig{Format: report.FormatYAML},
		Classify: ClassifyConfig{Workers: 3},
	}
	cfg2.applyDefaults()

	if cfg2.Report.Format != report.FormatYAML {
		t.Errorf("applyDefaults() overwrote explicit format, got %q", cfg2.Report.Format)
	}
	if cfg2.Classify.Workers != 3 {
		t.Errorf("applyDefaults() overwrote explicit workers, got %d", cfg2.Classify.Workers)
	}
}

func TestPairRelationships(t *testing.T) {
	cfg := Config{Classify: ClassifyConfig{Relationships: []string{"DirectParentOnly", "same"}}}

	rels, err := cfg.PairRelationships()
	if err != nil {
		t.Fatalf("PairRelationships() error = %v", err)
	}

	want := []model.Relationship{model.DirectParentOnly, model.Same}
	if len(rels) != len(want) {
		t.Fatalf("PairRelationships() = %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("PairRelationships()[%d] = %s, want %s", i, rels[i], want[i])
		}
	}

	empty := Config{}
	rels, err = empty.PairRelationships()
	if err != nil || len(rels) != 0 {
		t.Errorf("PairRelationships() on empty config = %v, %v; want empty selection", rels, err)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FSPROVE_TEST_HOME", "/home/testuser")

	cfg := Config{Report: ReportConfig{Output: "${FSPROVE_TEST_HOME}/rules.txt"}}
	cfg.expandEnv()

	if want := "/home/testuser/rules.txt"; cfg.Report.Output != want {
		t.Errorf("expandEnv() Report.Output = %s, want %s", cfg.Report.Output, want)
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if want := filepath.Join(home, ".config", "fsprove", "config.yaml"); path != want {
		t.Errorf("DefaultPath() = %s, want %s", path, want)
	}
}
