package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Package sources loads the export source definitions (YAML/JSON): which
// Asana projects to pull tasks from and how.

var defaultFields = []string{
	"name", "notes", "html_notes", "completed", "assignee.name",
	"due_on", "permalink_url", "modified_at",
}

const (
	defaultPageSize       = 100
	maxPageSize           = 100
	defaultRequestDelayMs = 250
)

// Source is one project to export.
type Source struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	ProjectGID       string   `json:"project" yaml:"project"`
	Fields           []string `json:"fields" yaml:"fields"`
	PageSize         int      `json:"page_size" yaml:"page_size"`
	IncludeCompleted bool     `json:"include_completed" yaml:"include_completed"`
	RequestDelayMs   int      `json:"request_delay_ms" yaml:"request_delay_ms"`
}

type configFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry holds validated sources in file order.
type Registry struct {
	sources []Source
	idx     map[string]Source
}

// LoadRegistry loads sources from a YAML or JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sources file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	file, err := parseConfig(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(file.Sources)
}

// NewRegistry sanitizes and validates sources.
func NewRegistry(in []Source) (*Registry, error) {
	if len(in) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	reg := &Registry{
		sources: make([]Source, 0, len(in)),
		idx:     make(map[string]Source, len(in)),
	}
	for i := range in {
		s := sanitizeSource(in[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.sources = append(reg.sources, s)
		reg.idx[s.ID] = s
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseConfig(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var file configFile
		if err := d.fn(data, &file); err == nil {
			return file, nil
		}
	}

	return configFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.ProjectGID = strings.TrimSpace(s.ProjectGID)

	fields := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = append(fields, defaultFields...)
	}
	s.Fields = fields

	if s.Name == "" {
		s.Name = s.ID
	}
	if s.PageSize <= 0 || s.PageSize > maxPageSize {
		s.PageSize = defaultPageSize
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.ProjectGID == "" {
		return fmt.Errorf("project is required for source %q", s.ID)
	}
	return nil
}

// All returns a copy of the configured sources.
func (r *Registry) All() []Source {
	if r == nil {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// ByID returns the source with the given id.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	s, ok := r.idx[strings.TrimSpace(id)]
	return s, ok
}

// RequestDelay is the pause between page fetches for the source.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}
