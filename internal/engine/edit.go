package engine

import (
	"fmt"
	"strings"

	"github.com/dshills/richinput/internal/engine/buffer"
	"github.com/dshills/richinput/internal/engine/cursor"
	"github.com/dshills/richinput/internal/nav"
	"github.com/dshills/richinput/internal/token"
	"github.com/dshills/richinput/internal/tokenize"
)

// ============================================================================
// Edit Operations
// ============================================================================

// replace is the single mutation path. It records the state before and
// after the edit, retokenizes, and leaves the caret after the new text.
// Callers hold the lock.
func (e *Engine) replace(r Range, text string) bool {
	r = e.buf.ClampRange(r)
	text = e.prepare(text, e.graphemesIn(r))
	if r.IsEmpty() && text == "" {
		return false
	}

	e.saveHistory()
	ins := e.buf.Replace(r, text)
	e.retokenize()
	e.goal = -1
	e.setCaret(ins.End)
	e.saveHistory()
	return true
}

func (e *Engine) graphemesIn(r Range) int {
	if r.IsEmpty() {
		return 0
	}
	return buffer.GraphemeCount(e.buf.Slice(r))
}

// InsertText inserts text at the caret, replacing a non-empty selection.
func (e *Engine) InsertText(text string) {
	e.mu.Lock()
	if !e.replace(e.sel.Range(), text) {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// InsertAt inserts text at index, leaving the selection's text untouched.
func (e *Engine) InsertAt(index int, text string) {
	e.mu.Lock()
	if index < 0 || index > e.buf.Len() {
		e.logger.Debug("insert index %d clamped to [0,%d]", index, e.buf.Len())
	}
	i := e.buf.ClampOffset(index)
	if !e.replace(Range{Start: i, End: i}, text) {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// DeleteText removes r. The range is clamped to the buffer and the caret
// moves to its start.
func (e *Engine) DeleteText(r Range) {
	e.ReplaceText(r, "")
}

// ReplaceText substitutes r with text. The range is clamped to the buffer
// and the caret moves to the end of the new text.
func (e *Engine) ReplaceText(r Range, text string) {
	e.mu.Lock()
	if c := e.buf.ClampRange(r); c != r {
		e.logger.Debug("range %v clamped to %v", r, c)
	}
	if !e.replace(r, text) {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// Backspace deletes the selection, or the atomic token or grapheme before
// the caret.
func (e *Engine) Backspace() {
	e.mu.Lock()
	r := e.sel.Range()
	if r.IsEmpty() {
		r = nav.BackspaceRange(e.buf, e.tokens, e.sel.Head().Index)
	}
	if !e.replace(r, "") {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// DeleteForward deletes the selection, or the atomic token or grapheme
// after the caret.
func (e *Engine) DeleteForward() {
	e.mu.Lock()
	r := e.sel.Range()
	if r.IsEmpty() {
		r = nav.DeleteRange(e.buf, e.tokens, e.sel.Head().Index)
	}
	if !e.replace(r, "") {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// InsertTab inserts TabSize spaces, or a tab character when TabSize is
// not positive.
func (e *Engine) InsertTab() {
	e.mu.Lock()
	tab := "\t"
	if e.opts.TabSize > 0 {
		tab = strings.Repeat(" ", e.opts.TabSize)
	}
	if !e.replace(e.sel.Range(), tab) {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// Clear empties the buffer.
func (e *Engine) Clear() {
	e.mu.Lock()
	if !e.replace(Range{Start: 0, End: e.buf.Len()}, "") {
		e.mu.Unlock()
		return
	}
	e.commit()
}

// ============================================================================
// History
// ============================================================================

// SaveHistoryEntry records the current buffer and selection unless the
// buffer equals the entry at the history index.
func (e *Engine) SaveHistoryEntry() {
	e.mu.Lock()
	e.saveHistory()
	e.commit()
}

// Undo restores the previous history entry. It reports whether anything
// changed.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	entry, err := e.history.Undo()
	if err != nil {
		e.mu.Unlock()
		e.logger.Debug("undo: %v", err)
		return false
	}
	e.restore(entry.Buffer, entry.Selection)
	e.commit()
	return true
}

// Redo re-applies the next history entry. It reports whether anything
// changed.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	entry, err := e.history.Redo()
	if err != nil {
		e.mu.Unlock()
		e.logger.Debug("redo: %v", err)
		return false
	}
	e.restore(entry.Buffer, entry.Selection)
	e.commit()
	return true
}

func (e *Engine) restore(text string, sel Selection) {
	e.buf.SetText(text)
	e.retokenize()
	e.goal = -1
	e.sel = sel.Resolve(e.buf)
}

// ============================================================================
// Parsing
// ============================================================================

// Reparse retokenizes the buffer and re-snaps the selection.
func (e *Engine) Reparse() {
	e.mu.Lock()
	e.retokenize()
	e.setSelection(e.sel)
	e.commit()
}

// AddParser inserts a recognizer by priority and retokenizes. A recognizer
// with the same name is replaced.
func (e *Engine) AddParser(r tokenize.Recognizer) error {
	if r == nil {
		return ErrNilParser
	}
	e.mu.Lock()
	e.pipeline.Add(r)
	e.logger.Debug("parser %s added at priority %d", r.Name(), r.Priority())
	e.retokenize()
	e.setSelection(e.sel)
	e.commit()
	return nil
}

// RemoveParser drops the named recognizer and retokenizes.
func (e *Engine) RemoveParser(name string) error {
	e.mu.Lock()
	if err := e.pipeline.Remove(name); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("remove parser: %w", err)
	}
	e.retokenize()
	e.setSelection(e.sel)
	e.commit()
	return nil
}

// Parsers returns the recognizer names in precedence order.
func (e *Engine) Parsers() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pipeline.Names()
}

// ============================================================================
// Focus and state
// ============================================================================

// Focus marks the input focused.
func (e *Engine) Focus() {
	e.mu.Lock()
	e.focused = true
	e.commit()
}

// Blur marks the input unfocused.
func (e *Engine) Blur() {
	e.mu.Lock()
	e.focused = false
	e.commit()
}

// SetState applies the non-nil fields of p. A new buffer is retokenized; a
// cursor without a selection collapses the selection onto it.
func (e *Engine) SetState(p StatePatch) error {
	e.mu.Lock()
	if p.History != nil {
		idx := len(p.History) - 1
		if p.HistoryIndex != nil {
			idx = *p.HistoryIndex
		}
		if err := e.history.Restore(p.History, idx); err != nil {
			e.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
	} else if p.HistoryIndex != nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: history index without history", ErrInvalidState)
	}

	if p.Multiline != nil {
		e.opts.Multiline = *p.Multiline
	}
	if p.Focused != nil {
		e.focused = *p.Focused
	}
	if p.Buffer != nil {
		e.buf.SetText(e.prepare(*p.Buffer, e.graphemesIn(Range{Start: 0, End: e.buf.Len()})))
		e.retokenize()
		e.goal = -1
	}

	switch {
	case p.Selection != nil:
		e.setSelection(*p.Selection)
	case p.Cursor != nil:
		e.setCaret(p.Cursor.Index)
	default:
		e.sel = e.sel.Resolve(e.buf)
		e.setSelection(e.sel)
	}
	e.commit()
	return nil
}

// ============================================================================
// Selection and Cursor
// ============================================================================

// SetSelection selects sel after snapping both ends out of atomic tokens.
// With smart selection, tokens overlapped by more than the threshold are
// included whole.
func (e *Engine) SetSelection(sel Selection) {
	e.mu.Lock()
	e.goal = -1
	e.setSelection(sel)
	e.commit()
}

// SelectAll selects the whole buffer.
func (e *Engine) SelectAll() {
	e.mu.Lock()
	e.goal = -1
	e.setSelection(cursor.Span(e.buf, Range{Start: 0, End: e.buf.Len()}))
	e.commit()
}

// SelectToken selects the span of tok.
func (e *Engine) SelectToken(tok token.Token) {
	e.mu.Lock()
	e.goal = -1
	e.setSelection(cursor.Span(e.buf, Range{Start: tok.Start, End: tok.End}))
	e.commit()
}

// SetCursor collapses the selection at index, snapped out of atomic tokens.
func (e *Engine) SetCursor(index int) {
	e.mu.Lock()
	if index < 0 || index > e.buf.Len() {
		e.logger.Debug("cursor index %d clamped to [0,%d]", index, e.buf.Len())
	}
	e.goal = -1
	e.setCaret(index)
	e.commit()
}

// MoveCursor moves the caret in direction d. With extend the anchor stays
// and the selection grows or shrinks; otherwise a horizontal move from a
// non-empty selection collapses it to the matching edge. Vertical moves do
// nothing in single-line engines.
func (e *Engine) MoveCursor(d Direction, extend bool) {
	e.mu.Lock()
	if d.Vertical() && !e.opts.Multiline {
		e.mu.Unlock()
		return
	}

	head := e.sel.Head()
	if !extend && !e.sel.IsEmpty() && (d == nav.Left || d == nav.Right) {
		e.goal = -1
		if d == nav.Left {
			e.setCaret(e.sel.Start.Index)
		} else {
			e.setCaret(e.sel.End.Index)
		}
		e.commit()
		return
	}

	goal := -1
	if d.Vertical() {
		if e.goal < 0 {
			e.goal = head.Column
		}
		goal = e.goal
	} else {
		e.goal = -1
	}

	next := nav.Move(e.buf, e.tokens, head.Index, d, goal)
	if extend {
		e.setSelection(e.sel.Extend(e.position(next)))
	} else {
		e.setCaret(next)
	}
	e.commit()
}
