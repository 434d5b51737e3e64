// Package history keeps the bounded back/forward trail of visited
// directories with classic browser semantics.
package history

// DefaultMaxSize bounds a history unless a caller picks its own limit.
const DefaultMaxSize = 100

type History struct {
	entries []string
	cursor  int
	maxSize int
}

func New(maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &History{
		entries: make([]string, 0, maxSize),
		cursor:  -1,
		maxSize: maxSize,
	}
}

// Push records path as the new current entry. Any forward entries past
// the cursor are discarded, and the oldest entry is evicted once the
// configured limit is reached. Pushing the path that is already current
// leaves the entries unchanged.
func (h *History) Push(path string) {
	if h.cursor >= 0 && h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
	if h.cursor >= 0 && h.entries[h.cursor] == path {
		h.cursor = len(h.entries) - 1
		return
	}
	h.entries = append(h.entries, path)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor one entry back and returns the new current path.
// It reports false, leaving the cursor unchanged, when there is nothing
// to go back to.
func (h *History) Back() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward and returns the new current
// path. It reports false when the cursor is already at the newest entry.
func (h *History) Forward() (string, bool) {
	if !h.CanGoForward() {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) CanGoBack() bool {
	return h.cursor > 0
}

func (h *History) CanGoForward() bool {
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Current returns the entry at the cursor, if any.
func (h *History) Current() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	return h.entries[h.cursor], true
}

func (h *History) Len() int {
	return len(h.entries)
}

// Snapshot is the persisted shape of a history.
type Snapshot struct {
	Entries []string `json:"entries"`
	Cursor  int      `json:"cursor"`
}

func (h *History) Snapshot() Snapshot {
	entries := make([]string, len(h.entries))
	copy(entries, h.entries)
	return Snapshot{Entries: entries, Cursor: h.cursor}
}

// Restore replaces the history with a previously saved snapshot. A
// malformed snapshot (cursor out of bounds, entries beyond the limit
// trimmed from the front) leaves the history empty and reports false.
func (h *History) Restore(s Snapshot) bool {
	h.entries = h.entries[:0]
	h.cursor = -1
	if len(s.Entries) == 0 {
		// An empty trail carries no position; a positive cursor is malformed.
		return s.Cursor <= 0
	}
	if s.Cursor < 0 || s.Cursor >= len(s.Entries) {
		return false
	}
	entries := s.Entries
	cursor := s.Cursor
	if len(entries) > h.maxSize {
		drop := len(entries) - h.maxSize
		entries = entries[drop:]
		cursor -= drop
		if cursor < 0 {
			cursor = 0
		}
	}
	h.entries = append(h.entries, entries...)
	h.cursor = cursor
	return true
}
