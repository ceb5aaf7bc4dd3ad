package logger

import (
	"bytes"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Format: FormatJSON, Out: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Debug("hidden")
	l.Info("encode.done", "complete", true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line (debug filtered), got %q", buf.String())
	}
	var rec map[string]any
	if err := j.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	if rec["msg"] != "encode.done" || rec["complete"] != true {
		t.Fatalf("unexpected record: %v", rec)
	}
	if ts, _ := rec["time"].(string); !strings.HasSuffix(ts, "Z") {
		t.Fatalf("expected UTC timestamp, got %v", rec["time"])
	}
}

func TestNewDebugText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Debug: true, Out: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Debug("walk.start", "node", "package")
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "node=package") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup(Config{Out: &buf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if L() != l {
		t.Fatalf("Setup did not install the logger")
	}
}
