package uthread

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNoOpLogger_DiscardsEverything(t *testing.T) {
	l := NewNoOpLogger()
	if l.IsEnabled(LevelError) {
		t.Fatal("noOpLogger must report every level disabled")
	}
	l.Log(LogEntry{Level: LevelError, Message: "should be discarded"})
}

func TestDefaultLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(LevelWarn)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	l.Out = w

	l.Log(LogEntry{Level: LevelDebug, Category: "spawn", Message: "ignored"})
	l.Log(LogEntry{Level: LevelError, Category: "terminate", Message: "shown", TID: 3, Quantum: 9})
	w.Close()

	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "ignored") {
		t.Fatalf("output contains a below-threshold entry: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("output missing the above-threshold entry: %q", out)
	}
	if !strings.Contains(out, "tid=3") || !strings.Contains(out, "quantum=9") {
		t.Fatalf("output missing tid/quantum fields: %q", out)
	}
}

func TestGlobalLogger_DefaultsToNoOp(t *testing.T) {
	SetStructuredLogger(nil)
	if getGlobalLogger().IsEnabled(LevelError) {
		t.Fatal("unset global logger must fall back to a no-op logger")
	}
}

func TestSetStructuredLogger_RoundTrip(t *testing.T) {
	custom := NewDefaultLogger(LevelDebug)
	SetStructuredLogger(custom)
	t.Cleanup(func() { SetStructuredLogger(nil) })

	if got := getGlobalLogger(); got != Logger(custom) {
		t.Fatal("getGlobalLogger must return the logger set via SetStructuredLogger")
	}
}
