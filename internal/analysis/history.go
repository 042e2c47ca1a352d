package analysis

import (
	"maps"
	"slices"
)

// DefaultHistorySize is the number of calculations a calculator keeps.
const DefaultHistorySize = 100

// History is a fixed capacity ring buffer of calculation entries. When full,
// adding an entry evicts the oldest one. It is not safe for concurrent use.
type History struct {
	entries []HistoryEntry
	start   int
	size    int
}

// NewHistory creates a history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{entries: make([]HistoryEntry, capacity)}
}

// Add appends an entry, evicting the oldest one when the buffer is full.
func (h *History) Add(e HistoryEntry) {
	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[(h.start+h.size)%capacity] = e
		h.size++
		return
	}
	h.entries[h.start] = e
	h.start = (h.start + 1) % capacity
}

// Len is the number of entries currently held.
func (h *History) Len() int {
	return h.size
}

// Cap is the maximum number of entries held.
func (h *History) Cap() int {
	return len(h.entries)
}

// Entries returns the held entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, 0, h.size)
	for i := 0; i < h.size; i++ {
		out = append(out, h.entries[(h.start+i)%len(h.entries)])
	}
	return out
}

// Last returns the most recent entry.
func (h *History) Last() (HistoryEntry, bool) {
	if h.size == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[(h.start+h.size-1)%len(h.entries)], true
}

// Clear removes every entry.
func (h *History) Clear() {
	clear(h.entries)
	h.start = 0
	h.size = 0
}

// Summary counts the held entries by calculation type.
func (h *History) Summary() HistorySummary {
	s := HistorySummary{TypeCounts: make(map[string]int)}
	entries := h.Entries()
	if len(entries) == 0 {
		return s
	}
	for _, e := range entries {
		s.TypeCounts[e.Type]++
	}
	s.TotalCalculations = len(entries)
	s.Types = slices.Sorted(maps.Keys(s.TypeCounts))
	s.First = entries[0].Timestamp
	s.Last = entries[len(entries)-1].Timestamp
	return s
}
