package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides local DB/cache abstraction.

// Store tracks which task versions have already been exported.
type Store interface {
	Close() error
	SeenTask(version string) (bool, error)
	MarkTask(version string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TaskTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTaskTTL         = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TaskTTL <= 0 {
		opts.TaskTTL = defaultTaskTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenTask(string) (bool, error) { return false, nil }
func (noopStore) MarkTask(string) error         { return nil }
