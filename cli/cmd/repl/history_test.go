package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistory_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{Line: "fn f = 1", Mode: modeEval},
		{Line: "list", Mode: modeCtrl},
		{Line: "f", Mode: modeEval},
		{Line: "f", Mode: modeEval},
		{Line: "fn f = 1", Mode: modeEval},
	} {
		if _, err := h.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := "C:list\nE:f\nE:fn f = 1\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if reloaded.Len() != 3 {
		t.Fatalf("reloaded %d entries", reloaded.Len())
	}

	if e, _ := reloaded.GetEntry(0); e.Line != "list" || e.Mode != modeCtrl {
		t.Errorf("entry 0 = %+v", e)
	}

	if got := reloaded.Entries(); got[2] != (HistoryEntry{Line: "fn f = 1", Mode: modeEval}) {
		t.Errorf("newest entry = %+v", got[2])
	}

	if _, err := reloaded.GetEntry(3); err != ErrOutOfBounds {
		t.Errorf("GetEntry(3) error = %v", err)
	}
}

func TestHistory_Memory(t *testing.T) {
	h := NewHistory("")

	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	for i := range maxHistory + 5 {
		if _, err := h.WriteWithMode(strings.Repeat("x", i+1), modeEval); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != maxHistory {
		t.Errorf("Len() = %d, want %d", h.Len(), maxHistory)
	}

	if e, _ := h.GetEntry(0); len(e.Line) != 6 {
		t.Errorf("oldest entry has length %d, want 6", len(e.Line))
	}

	if n, _ := h.WriteWithMode("   ", modeEval); n != 0 || h.Len() != maxHistory {
		t.Error("blank entry recorded")
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		line string
		want HistoryEntry
	}{
		{line: "E:x + 1", want: HistoryEntry{Line: "x + 1", Mode: modeEval}},
		{line: "C:view json", want: HistoryEntry{Line: "view json", Mode: modeCtrl}},
		{line: "unmarked", want: HistoryEntry{Line: "unmarked", Mode: modeEval}},
	}

	for _, tt := range tests {
		got := parseEntry(tt.line)
		if got != tt.want {
			t.Errorf("parseEntry(%q) = %+v, want %+v", tt.line, got, tt.want)
		}

		if tt.line != "unmarked" && got.String() != tt.line {
			t.Errorf("String() = %q, want %q", got.String(), tt.line)
		}
	}
}
