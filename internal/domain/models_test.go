package domain

import (
	"testing"
	"time"
)

func TestVersionTracksModification(t *testing.T) {
	rec := TaskRecord{GID: "1"}
	if rec.Version() != "1" {
		t.Fatalf("unexpected version %q", rec.Version())
	}
	rec.ModifiedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	if got := rec.Version(); got != "1@2024-05-01T09:00:00Z" {
		t.Fatalf("unexpected version %q", got)
	}
}
