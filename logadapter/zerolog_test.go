package logadapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joeycumines/go-uthread"
)

func TestZerologLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(&buf, uthread.LevelWarn)

	if l.IsEnabled(uthread.LevelDebug) {
		t.Fatal("LevelDebug must not be enabled when minLevel is LevelWarn")
	}
	if !l.IsEnabled(uthread.LevelError) {
		t.Fatal("LevelError must be enabled when minLevel is LevelWarn")
	}
}

func TestZerologLogger_LogWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(&buf, uthread.LevelDebug)

	l.Log(uthread.LogEntry{
		Level:    uthread.LevelInfo,
		Category: "spawn",
		TID:      3,
		Quantum:  9,
		Message:  "thread spawned",
	})

	out := buf.String()
	for _, want := range []string{`"category":"spawn"`, `"tid":3`, `"quantum":9`, "thread spawned"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q: %s", want, out)
		}
	}
}
