package engine

import (
	"github.com/dshills/richinput/internal/engine/cursor"
	"github.com/dshills/richinput/internal/engine/history"
	"github.com/dshills/richinput/internal/token"
)

// State is a snapshot of an engine. It shares no memory with the engine.
type State struct {
	Buffer       string
	Tokens       []token.Token
	Selection    cursor.Selection
	Cursor       cursor.Position
	Multiline    bool
	Focused      bool
	History      []history.Entry
	HistoryIndex int
}

// StatePatch lists the fields SetState changes. Nil fields are left alone.
type StatePatch struct {
	Buffer    *string
	Selection *cursor.Selection
	Cursor    *cursor.Position
	Multiline *bool
	Focused   *bool

	// History replaces the undo stack when non-nil; HistoryIndex must then
	// address one of its entries.
	History      []history.Entry
	HistoryIndex *int
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.Tokens = token.Clone(s.Tokens)
	s.History = append([]history.Entry(nil), s.History...)
	return s
}
