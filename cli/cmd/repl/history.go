package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const (
	// baseHistory is the name of the history file in the cache directory.
	baseHistory = "history"

	// maxHistory bounds the entries kept in memory and on disk.
	maxHistory = 1000
)

// HistoryEntry is one submitted line and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String returns the entry as stored in the history file.
func (e HistoryEntry) String() string { return e.Mode.prefix() + e.Line }

// parseEntry decodes a history file line. Lines without a mode marker are
// eval entries.
func parseEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, modeCtrl.prefix()); ok {
		return HistoryEntry{Line: s, Mode: modeCtrl}
	}

	return HistoryEntry{Line: strings.TrimPrefix(line, modeEval.prefix()), Mode: modeEval}
}

// prefix returns the history file marker of mode.
func (mode inputMode) prefix() string {
	if mode == modeCtrl {
		return "C:"
	}

	return "E:"
}

// History is the list of submitted lines, oldest first, mirrored to a file
// with one [HistoryEntry.String] per line. Resubmitting a line moves it to
// the end. An empty path keeps history in memory only.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []HistoryEntry
}

// NewHistory returns an empty History persisted at path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with those of the history file. A missing file
// is an empty history.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, parseEntry(line))
		}
	}

	h.trim()

	return scanner.Err()
}

// WriteWithMode records entry as entered in mode and returns the number of
// bytes written to the history file.
func (h *History) WriteWithMode(entry string, mode inputMode) (int, error) {
	e := HistoryEntry{Line: strings.TrimSpace(entry), Mode: mode}
	if e.Line == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return len(e.Line), nil
	}

	rewrite := false

	if i := slices.Index(h.entries, e); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
		rewrite = true
	}

	h.entries = append(h.entries, e)
	rewrite = h.trim() || rewrite

	switch {
	case h.path == "":
		return len(e.Line), nil
	case rewrite:
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(e.String() + "\n")
}

// trim drops the oldest entries beyond maxHistory and reports whether any
// were dropped. Must be called with h.mu held.
func (h *History) trim() bool {
	n := len(h.entries) - maxHistory
	if n <= 0 {
		return false
	}

	h.entries = slices.Delete(h.entries, 0, n)

	return true
}

// GetEntry returns the entry at index i, where 0 is the oldest.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	var b strings.Builder

	for _, e := range h.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	if err := os.WriteFile(h.path, []byte(b.String()), 0o600); err != nil {
		return 0, err
	}

	return b.Len(), nil
}
