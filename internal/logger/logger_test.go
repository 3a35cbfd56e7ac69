package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONWithLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(New("warn", zapcore.AddSync(&buf)).Desugar())

	log.InfoObj("dropped", "k", 1)
	log.WarnObj("kept", "request", map[string]any{"status": 404})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "kept" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %#v", entry)
	}
	req, ok := entry["request"].(map[string]any)
	if !ok || req["status"] != float64(404) {
		t.Fatalf("unexpected request field %#v", entry["request"])
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != zapcore.InfoLevel {
		t.Fatalf("parseLevel = %v", got)
	}
	if got := parseLevel("warning"); got != zapcore.WarnLevel {
		t.Fatalf("parseLevel = %v", got)
	}
}
