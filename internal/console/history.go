package console

import "sync"

// History is the in-memory list of submitted lines.
// Resubmitting a line moves it to the end; the oldest entries are dropped beyond the limit.
type History struct {
	mu      sync.Mutex
	entries []string
	limit   int
}

// NewHistory creates a history holding at most limit entries. A limit of zero means unbounded.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends line, removing an earlier identical entry.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.entries[:0]
	for _, entry := range h.entries {
		if entry != line {
			kept = append(kept, entry)
		}
	}
	h.entries = append(kept, line)

	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = append([]string(nil), h.entries[len(h.entries)-h.limit:]...)
	}
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
