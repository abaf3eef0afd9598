package terminal

import (
	"context"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richinput/internal/engine"
	"github.com/dshills/richinput/internal/engine/buffer"
	"github.com/dshills/richinput/internal/engine/cursor"
	"github.com/dshills/richinput/internal/layout"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/nav"
)

// Host connects an engine to a tcell screen.
type Host struct {
	screen  tcell.Screen
	engine  *engine.Engine
	palette *Palette
	grid    *layout.Monospace
	mapper  *layout.Mapper
	logger  *logging.Logger
	status  bool

	scroll   int
	dragging bool
	anchor   int
	pasting  []rune
	inPaste  bool
}

// Option configures a Host.
type Option func(*Host)

// WithPalette sets the colors.
func WithPalette(p *Palette) Option {
	return func(h *Host) { h.palette = p }
}

// WithTabWidth sets the tab stop spacing.
func WithTabWidth(n int) Option {
	return func(h *Host) { h.grid.TabWidth = n }
}

// WithStatusLine shows or hides the status line.
func WithStatusLine(on bool) Option {
	return func(h *Host) { h.status = on }
}

// WithMapperOptions configures the hit-test fallbacks.
func WithMapperOptions(opts ...layout.MapperOption) Option {
	return func(h *Host) { h.mapper = layout.NewMapper(h.grid, opts...) }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// New creates a host. The screen is initialized by Run.
func New(screen tcell.Screen, eng *engine.Engine, opts ...Option) *Host {
	h := &Host{
		screen: screen,
		engine: eng,
		grid:   &layout.Monospace{},
		status: true,
		logger: logging.Null(),
	}
	h.mapper = layout.NewMapper(h.grid)
	for _, opt := range opts {
		opt(h)
	}
	if h.palette == nil {
		h.palette = DefaultPalette()
	}
	h.logger = h.logger.WithComponent("terminal")
	return h
}

// Run initializes the screen and processes events until the user finishes
// or ctx is done. State changes made from other goroutines trigger a redraw.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return err
	}
	defer h.screen.Fini()
	h.screen.EnableMouse()
	h.screen.EnablePaste()

	unsubscribe := h.engine.OnStateChange(func(engine.State) {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer unsubscribe()

	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(ctx))
	})
	defer stop()

	h.engine.Focus()
	defer h.engine.Blur()

	h.draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ie, ok := ev.(*tcell.EventInterrupt); ok && ie.Data() == ctx {
			return ctx.Err()
		}
		if h.Handle(ev) {
			return nil
		}
		h.draw()
	}
}

// Handle applies one event to the engine and reports whether the user asked
// to finish.
func (h *Host) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventPaste:
		h.handlePaste(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return false
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	if h.inPaste {
		switch ev.Key() {
		case tcell.KeyRune:
			h.pasting = append(h.pasting, ev.Rune())
		case tcell.KeyEnter:
			h.pasting = append(h.pasting, '\n')
		case tcell.KeyTab:
			h.pasting = append(h.pasting, '\t')
		}
		return false
	}

	mod := ev.Modifiers()
	extend := mod&tcell.ModShift != 0
	word := mod&(tcell.ModCtrl|tcell.ModAlt) != 0
	e := h.engine

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlD:
		return true
	case tcell.KeyLeft:
		e.MoveCursor(pick(word, nav.WordLeft, nav.Left), extend)
	case tcell.KeyRight:
		e.MoveCursor(pick(word, nav.WordRight, nav.Right), extend)
	case tcell.KeyUp:
		e.MoveCursor(nav.Up, extend)
	case tcell.KeyDown:
		e.MoveCursor(nav.Down, extend)
	case tcell.KeyHome:
		e.MoveCursor(pick(mod&tcell.ModCtrl != 0, nav.DocStart, nav.LineStart), extend)
	case tcell.KeyEnd:
		e.MoveCursor(pick(mod&tcell.ModCtrl != 0, nav.DocEnd, nav.LineEnd), extend)
	case tcell.KeyCtrlA:
		e.SelectAll()
	case tcell.KeyCtrlZ:
		e.Undo()
	case tcell.KeyCtrlY:
		e.Redo()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Backspace()
	case tcell.KeyDelete:
		e.DeleteForward()
	case tcell.KeyTab:
		e.InsertTab()
	case tcell.KeyEnter:
		e.InsertText("\n")
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			e.InsertText(string(r))
		}
	default:
		h.logger.Debug("unbound key %s", ev.Name())
	}
	return false
}

func pick(cond bool, a, b nav.Direction) nav.Direction {
	if cond {
		return a
	}
	return b
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if h.status {
		if _, height := h.screen.Size(); y >= height-1 {
			return
		}
	}

	pressed := ev.Buttons()&tcell.Button1 != 0
	if !pressed {
		h.dragging = false
		return
	}

	width, _ := h.screen.Size()
	buf := buffer.New(h.engine.Text())
	idx := h.mapper.HitTest(buf, h.engine.Tokens(), layout.Point{X: float64(x), Y: float64(y)}, float64(width))

	if !h.dragging {
		h.dragging = true
		h.anchor = idx
		h.engine.SetCursor(idx)
		return
	}
	h.engine.SetSelection(cursor.FromAnchorHead(cursor.Position{Index: h.anchor}, cursor.Position{Index: idx}))
}

func (h *Host) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		h.inPaste = true
		h.pasting = h.pasting[:0]
		return
	}
	h.inPaste = false
	if len(h.pasting) > 0 {
		h.engine.InsertText(string(h.pasting))
	}
}
