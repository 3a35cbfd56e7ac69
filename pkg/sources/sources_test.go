package sources

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sources.yaml")
	content := `
sources:
  - id: roadmap
    name: Roadmap
    project: "1200000000000001"
    fields: [name, notes]
    page_size: 50
    request_delay_ms: 750
  - id: bugs
    project: "1200000000000002"
    page_size: 500
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(reg.All()))
	}

	s, ok := reg.ByID("roadmap")
	if !ok {
		t.Fatalf("expected source roadmap to be loaded")
	}
	if s.ProjectGID != "1200000000000001" || s.PageSize != 50 {
		t.Fatalf("unexpected source %#v", s)
	}
	if len(s.Fields) != 2 || s.Fields[1] != "notes" {
		t.Fatalf("unexpected fields %v", s.Fields)
	}
	if s.RequestDelay() != 750*time.Millisecond {
		t.Fatalf("unexpected request delay: %v", s.RequestDelay())
	}

	bugs, _ := reg.ByID("bugs")
	if bugs.Name != "bugs" || bugs.PageSize != defaultPageSize || len(bugs.Fields) != len(defaultFields) {
		t.Fatalf("defaults not applied: %#v", bugs)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sources.json")
	if err := os.WriteFile(file, []byte(`{"sources":[{"id":"a","project":"1"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if _, ok := reg.ByID("a"); !ok {
		t.Fatalf("expected source a")
	}
}

func TestNewRegistryRejectsDuplicatesAndMissingProject(t *testing.T) {
	if _, err := NewRegistry([]Source{{ID: "x", ProjectGID: "1"}, {ID: "x", ProjectGID: "2"}}); err == nil {
		t.Fatalf("expected duplicate source error")
	}
	if _, err := NewRegistry([]Source{{ID: "x"}}); err == nil {
		t.Fatalf("expected missing project error")
	}
	if _, err := NewRegistry(nil); err == nil {
		t.Fatalf("expected empty registry error")
	}
}
