package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("parse entry: %v", err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLoggerWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	l, err := NewJSONLogger(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Info("challenge_loaded", map[string]any{"index": 0})
	l.Error("load_failed", map[string]any{"index": 3})
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["level"] != "info" || entries[0]["msg"] != "challenge_loaded" {
		t.Fatalf("unexpected first entry %v", entries[0])
	}
	if entries[0]["index"] != float64(0) {
		t.Fatalf("expected field index=0, got %v", entries[0]["index"])
	}
	if entries[1]["level"] != "error" {
		t.Fatalf("expected error level, got %v", entries[1]["level"])
	}
}

func TestWithAddsBaseFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	l, err := NewJSONLogger(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	session := l.With(map[string]any{"session_id": "sess-1"})
	session.Info("check", nil)
	_ = l.Close()

	entries := readEntries(t, path)
	if entries[0]["session_id"] != "sess-1" {
		t.Fatalf("expected session_id base field, got %v", entries[0])
	}
}

func TestDebugGated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	l, err := NewJSONLogger(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	l.Debug("noisy", nil)
	_ = l.Close()
	if got := len(readEntries(t, path)); got != 0 {
		t.Fatalf("expected debug suppressed, got %d entries", got)
	}
}

func TestNilAndEmptyPathAreSafe(t *testing.T) {
	var nilLogger *JSONLogger
	nilLogger.Info("ignored", nil)
	if nilLogger.With(nil) != nil {
		t.Fatalf("expected nil logger to stay nil")
	}

	l, err := NewJSONLogger("", true)
	if err != nil {
		t.Fatalf("new discard logger: %v", err)
	}
	l.Info("discarded", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close discard logger: %v", err)
	}
}
