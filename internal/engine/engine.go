package engine

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/richinput/internal/emoji"
	"github.com/dshills/richinput/internal/engine/buffer"
	"github.com/dshills/richinput/internal/engine/cursor"
	"github.com/dshills/richinput/internal/engine/history"
	"github.com/dshills/richinput/internal/event"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/nav"
	"github.com/dshills/richinput/internal/token"
	"github.com/dshills/richinput/internal/tokenize"
)

// Re-export commonly used types for convenience.
type (
	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Position is a caret location.
	Position = cursor.Position

	// Selection represents a directed selection.
	Selection = cursor.Selection

	// Direction names a caret movement.
	Direction = nav.Direction
)

// Engine owns the buffer, its token set, the selection and the undo
// history of one rich input. Every operation runs to completion and then
// notifies state-change subscribers on the calling goroutine.
//
// Operations are serialised by a mutex that is released before
// subscribers run, so a subscriber may call back into the engine.
type Engine struct {
	mu sync.Mutex

	id       string
	opts     Options
	pipeline *tokenize.Pipeline
	catalog  *emoji.Catalog
	registry *tokenize.Registry
	logger   *logging.Logger

	buf     *buffer.Buffer
	tokens  []token.Token
	sel     cursor.Selection
	focused bool
	history *history.History

	// goal is the column kept across consecutive vertical moves, or -1.
	goal int

	listeners event.Listeners[State]

	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:   uuid.NewString(),
		opts: DefaultOptions(),
		goal: -1,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.opts.SmartSelectionThreshold <= 0 {
		e.opts.SmartSelectionThreshold = DefaultSmartSelectionThreshold
	}
	if e.opts.MaxHistory <= 0 {
		e.opts.MaxHistory = DefaultMaxHistory
	}
	if e.logger == nil {
		e.logger = logging.Null()
	}
	e.logger = e.logger.WithComponent("engine").WithField("engine", e.id)

	if e.pipeline == nil {
		popts := []tokenize.Option{
			tokenize.WithOptions(e.opts.Parsers),
			tokenize.WithLogger(e.logger),
		}
		if e.catalog != nil {
			popts = append(popts, tokenize.WithCatalog(e.catalog))
		}
		if e.registry != nil {
			popts = append(popts, tokenize.WithRegistry(e.registry))
		}
		e.pipeline = tokenize.NewPipeline(popts...)
	}

	e.buf = buffer.New(e.prepare(e.initContent, 0))
	e.history = history.New(e.opts.MaxHistory)
	e.retokenize()
	e.sel = cursor.Collapsed(e.position(e.buf.Len()))
	e.initContent = ""
	return e
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string { return e.id }

// Options returns the engine's behavior settings.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Text()
}

// Tokens returns a copy of the current token set.
func (e *Engine) Tokens() []token.Token {
	e.mu.Lock()
	defer e.mu.Unlock()
	return token.Clone(e.tokens)
}

// TokenAt returns the token covering index.
func (e *Engine) TokenAt(index int) (token.Token, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := token.At(e.tokens, index)
	return t.Clone(), ok
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel
}

// Cursor returns the caret, which is the head of the selection.
func (e *Engine) Cursor() Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Head()
}

// SelectedText returns the text covered by the selection.
func (e *Engine) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Slice(e.sel.Range())
}

// IsEmpty returns true if the buffer is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.IsEmpty()
}

// IsFocused reports whether the host has focused the input.
func (e *Engine) IsFocused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// CanUndo returns true if Undo would change the state.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo returns true if Redo would change the state.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// State returns a deep-copied snapshot of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() State {
	return State{
		Buffer:       e.buf.Text(),
		Tokens:       token.Clone(e.tokens),
		Selection:    e.sel,
		Cursor:       e.sel.Head(),
		Multiline:    e.opts.Multiline,
		Focused:      e.focused,
		History:      e.history.Entries(),
		HistoryIndex: e.history.Index(),
	}
}

// ============================================================================
// Subscription
// ============================================================================

// OnStateChange registers fn to receive a snapshot after every operation.
// Subscribers run in registration order. The returned function removes the
// subscription.
func (e *Engine) OnStateChange(fn func(State)) (unsubscribe func()) {
	sub, err := e.listeners.Subscribe(fn)
	if err != nil {
		e.logger.Debug("subscribe: %v", err)
		return func() {}
	}
	return sub.Cancel
}

// commit unlocks the engine and publishes the current state. Callers hold
// the lock.
func (e *Engine) commit() {
	s := e.snapshot()
	e.mu.Unlock()
	if _, err := e.listeners.Publish(s); err != nil {
		e.logger.Warn("state change subscriber: %v", err)
	}
}

// ============================================================================
// Internal helpers
// ============================================================================

func (e *Engine) position(i int) Position {
	return cursor.PositionAt(e.buf, i)
}

func (e *Engine) retokenize() {
	toks := e.pipeline.Tokenize(e.buf.Text())
	if token.IsPlaceholder(toks) {
		toks[0] = token.Placeholder(e.opts.Placeholder)
	}
	e.tokens = toks
}

var newlineFolder = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// prepare applies line folding and the length cap to text that is about to
// replace removed bytes of the buffer.
func (e *Engine) prepare(text string, removed int) string {
	if !e.opts.Multiline {
		text = newlineFolder.Replace(text)
	}
	if e.opts.MaxLength > 0 {
		kept := 0
		if e.buf != nil {
			kept = buffer.GraphemeCount(e.buf.Text()) - removed
		}
		text = buffer.TruncateGraphemes(text, max(e.opts.MaxLength-kept, 0))
	}
	return text
}

func (e *Engine) saveHistory() {
	e.history.Save(history.Entry{Buffer: e.buf.Text(), Selection: e.sel})
}

// setCaret collapses the selection at i after snapping it.
func (e *Engine) setCaret(i int) {
	i = nav.SnapToBoundary(e.tokens, e.buf.ClampOffset(i))
	e.sel = cursor.Collapsed(e.position(i))
}

// setSelection applies smart selection to the requested range, then snaps
// both ends out of atomic tokens.
func (e *Engine) setSelection(sel Selection) {
	dir := sel.Direction
	r := Range{Start: sel.Start.Index, End: sel.End.Index}
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
		switch dir {
		case cursor.DirectionForward:
			dir = cursor.DirectionBackward
		case cursor.DirectionBackward:
			dir = cursor.DirectionForward
		}
	}
	if c := e.buf.ClampRange(r); c != r {
		e.logger.Debug("selection %v clamped to %v", r, c)
		r = c
	}

	if e.opts.SmartSelection {
		r = nav.ExpandToTokens(e.tokens, r, e.opts.SmartSelectionThreshold)
	}
	r.Start = nav.SnapToBoundary(e.tokens, r.Start)
	r.End = nav.SnapToBoundary(e.tokens, r.End)

	out := Selection{Start: e.position(r.Start), End: e.position(r.End), Direction: dir}
	if out.IsEmpty() {
		out.Direction = cursor.DirectionNone
	}
	e.sel = out
}
