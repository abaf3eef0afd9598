// Package engine provides the document engine behind a rich text input.
//
// The engine is the single source of truth for one input: the plain-text
// buffer, the token set derived from it, the selection and the undo
// history. Hosts translate keystrokes and pointer events into engine calls
// and re-render from the snapshot delivered to OnStateChange.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: Plain-text storage with line and grapheme-column conversion
//   - cursor: Position and directed Selection values
//   - history: Snapshot undo/redo bounded to MaxHistory entries
//
// Tokenization is delegated to a tokenize.Pipeline and caret movement to
// the nav package. Every mutation retokenizes the whole buffer.
//
// # Basic Usage
//
//	e := engine.New(engine.WithPlaceholder("Write a reply"))
//	unsubscribe := e.OnStateChange(func(s engine.State) {
//		render(s.Tokens, s.Selection)
//	})
//	defer unsubscribe()
//
//	e.InsertText("ship it #release")
//	e.MoveCursor(nav.Left, false) // jumps over the hashtag
//	e.Backspace()                 // removes the space before it
//	e.Undo()
//
// # Atomic Tokens
//
// Hashtags, mentions, URLs, emoji, images, markdown spans, custom tokens
// and line breaks are atomic. The caret never rests inside one; selections
// are snapped to their edges and, with smart selection enabled, grow to
// cover any token they overlap by more than SmartSelectionThreshold.
//
// # Undo/Redo
//
// Each mutation records the state before and after it. Consecutive entries
// with the same buffer are stored once, so 150 distinct edits leave exactly
// 100 entries with the default bound. Undo and Redo restore the buffer and
// selection exactly as recorded.
//
// # Thread Safety
//
// Operations are serialised by a mutex that is released before
// subscribers are notified. Subscribers run synchronously on the calling
// goroutine in registration order.
package engine
