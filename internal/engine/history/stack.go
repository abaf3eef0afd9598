package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/richinput/internal/engine/cursor"
)

// DefaultMaxEntries bounds the stack when New is given a non-positive size.
const DefaultMaxEntries = 100

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrInvalidIndex  = errors.New("history index out of range")
)

// Entry is an immutable snapshot of the document.
type Entry struct {
	Buffer    string
	Selection cursor.Selection
	Timestamp time.Time
}

// History manages the snapshot stack and the current position in it.
type History struct {
	mu sync.Mutex

	entries []Entry
	index   int

	maxEntries int
	now        func() time.Time
}

// New creates a history holding at most maxEntries snapshots.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		index:      -1,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Save appends e unless its buffer equals the entry at the current index.
// The redo tail is discarded first. Save stamps a zero Timestamp and
// reports whether an entry was added.
func (h *History) Save(e Entry) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= 0 && h.entries[h.index].Buffer == e.Buffer {
		return false
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = h.now()
	}

	h.entries = append(h.entries[:h.index+1], e)
	if len(h.entries) > h.maxEntries {
		excess := len(h.entries) - h.maxEntries
		h.entries = append([]Entry(nil), h.entries[excess:]...)
	}
	h.index = len(h.entries) - 1
	return true
}

// Undo steps back one entry and returns it.
func (h *History) Undo() (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index <= 0 {
		return Entry{}, ErrNothingToUndo
	}
	h.index--
	return h.entries[h.index], nil
}

// Redo steps forward one entry and returns it.
func (h *History) Redo() (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.entries)-1 {
		return Entry{}, ErrNothingToRedo
	}
	h.index++
	return h.entries[h.index], nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index returns the current position, or -1 when empty.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Current returns the entry at the current index.
func (h *History) Current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index < 0 {
		return Entry{}, false
	}
	return h.entries[h.index], true
}

// Entries returns a copy of the stack.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Restore replaces the stack. index must address an entry, or be -1 for an
// empty stack. Entries beyond the maximum are trimmed from the front.
func (h *History) Restore(entries []Entry, index int) error {
	if index < -1 || index >= len(entries) || (len(entries) > 0 && index < 0) {
		return ErrInvalidIndex
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]Entry(nil), entries...)
	h.index = index
	if excess := len(h.entries) - h.maxEntries; excess > 0 {
		h.entries = h.entries[excess:]
		h.index = max(h.index-excess, 0)
	}
	return nil
}

// Clear removes all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.index = -1
}

// SetMaxEntries changes the maximum number of entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(n int) {
	if n <= 0 {
		n = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = n
	if excess := len(h.entries) - n; excess > 0 {
		h.entries = h.entries[excess:]
		h.index = max(h.index-excess, 0)
	}
}

// MaxEntries returns the maximum number of entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
