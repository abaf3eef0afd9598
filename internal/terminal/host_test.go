package terminal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richinput/internal/config"
	"github.com/dshills/richinput/internal/engine"
	"github.com/dshills/richinput/internal/token"
)

func newTestHost(t *testing.T, eng *engine.Engine) (*Host, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(40, 6)
	t.Cleanup(s.Fini)
	return New(s, eng), s
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func typeText(h *Host, text string) {
	for _, r := range text {
		h.Handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func rowText(s tcell.SimulationScreen, row int) string {
	cells, width, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[row*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func TestTypingAndRendering(t *testing.T) {
	eng := engine.New()
	h, s := newTestHost(t, eng)

	typeText(h, "hi #tag")
	if eng.Text() != "hi #tag" {
		t.Fatalf("Text = %q", eng.Text())
	}
	h.draw()

	if got := rowText(s, 0); got != "hi #tag" {
		t.Errorf("row 0 = %q", got)
	}
	_, _, plain, _ := s.GetContent(0, 0)
	_, _, pill, _ := s.GetContent(4, 0)
	if plain == pill {
		t.Error("hashtag cells should be styled as a pill")
	}
	if !strings.Contains(rowText(s, 5), "Ln 1, Col 8") {
		t.Errorf("status line = %q", rowText(s, 5))
	}
}

func TestBackspaceRemovesPill(t *testing.T) {
	eng := engine.New()
	h, _ := newTestHost(t, eng)

	typeText(h, "hi #tag ")
	h.Handle(key(tcell.KeyBackspace2, tcell.ModNone))
	h.Handle(key(tcell.KeyBackspace2, tcell.ModNone))
	if eng.Text() != "hi " {
		t.Errorf("Text = %q, want %q", eng.Text(), "hi ")
	}
	h.Handle(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	if eng.Text() != "hi #tag" {
		t.Errorf("after undo Text = %q", eng.Text())
	}
}

func TestMovementKeys(t *testing.T) {
	eng := engine.New(engine.WithContent("one two\nthree"))
	h, _ := newTestHost(t, eng)

	h.Handle(key(tcell.KeyHome, tcell.ModCtrl))
	if got := eng.Cursor().Index; got != 0 {
		t.Fatalf("Ctrl+Home cursor = %d", got)
	}
	h.Handle(key(tcell.KeyRight, tcell.ModCtrl))
	if got := eng.Cursor().Index; got != 3 {
		t.Errorf("Ctrl+Right cursor = %d, want 3", got)
	}
	h.Handle(key(tcell.KeyRight, tcell.ModShift))
	if sel := eng.Selection(); sel.Start.Index != 3 || sel.End.Index != 4 {
		t.Errorf("Shift+Right selection = %v", sel)
	}
	h.Handle(key(tcell.KeyDown, tcell.ModNone))
	if got := eng.Cursor().Line; got != 1 {
		t.Errorf("Down line = %d", got)
	}
	h.Handle(key(tcell.KeyCtrlA, tcell.ModCtrl))
	if eng.SelectedText() != "one two\nthree" {
		t.Errorf("SelectAll = %q", eng.SelectedText())
	}
}

func TestMouseClickSnaps(t *testing.T) {
	eng := engine.New(engine.WithContent("hi #tag there"))
	h, _ := newTestHost(t, eng)
	h.draw()

	h.Handle(tcell.NewEventMouse(5, 0, tcell.Button1, tcell.ModNone))
	h.Handle(tcell.NewEventMouse(5, 0, tcell.ButtonNone, tcell.ModNone))
	if got := eng.Cursor().Index; got != 3 {
		t.Errorf("click inside pill cursor = %d, want 3", got)
	}

	h.Handle(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	h.Handle(tcell.NewEventMouse(10, 0, tcell.Button1, tcell.ModNone))
	h.Handle(tcell.NewEventMouse(10, 0, tcell.ButtonNone, tcell.ModNone))
	if sel := eng.Selection(); sel.Start.Index != 1 || sel.End.Index != 10 {
		t.Errorf("drag selection = %v", sel)
	}
}

func TestPaste(t *testing.T) {
	eng := engine.New()
	h, _ := newTestHost(t, eng)

	h.Handle(tcell.NewEventPaste(true))
	typeText(h, "a b")
	h.Handle(key(tcell.KeyEnter, tcell.ModNone))
	typeText(h, "c")
	h.Handle(tcell.NewEventPaste(false))

	if eng.Text() != "a b\nc" {
		t.Errorf("Text = %q", eng.Text())
	}
	if !eng.CanUndo() {
		t.Error("paste should be one undoable edit")
	}
	eng.Undo()
	if eng.Text() != "" {
		t.Errorf("after undo Text = %q", eng.Text())
	}
}

func TestFinishKeys(t *testing.T) {
	h, _ := newTestHost(t, engine.New())
	if h.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("rune should not finish")
	}
	if !h.Handle(key(tcell.KeyEscape, tcell.ModNone)) {
		t.Error("Escape should finish")
	}
	if !h.Handle(key(tcell.KeyCtrlD, tcell.ModCtrl)) {
		t.Error("Ctrl+D should finish")
	}
}

func TestPlaceholderRendering(t *testing.T) {
	h, s := newTestHost(t, engine.New(engine.WithPlaceholder("Say something")))
	h.draw()
	if got := rowText(s, 0); got != "Say something" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	h := New(s, engine.New(), WithStatusLine(false))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestPalette(t *testing.T) {
	cfg := config.Default().Terminal.Palette
	cfg.Hashtag = "#ffffff"
	p, err := NewPalette(cfg)
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}

	fg, _, _ := p.Style(tokenOf("hashtag"), false).Decompose()
	if fg != tcell.ColorBlack {
		t.Errorf("light pill foreground = %v, want black", fg)
	}
	if p.Style(tokenOf("text"), false) != p.Text {
		t.Error("unselected text should use the text style")
	}
	if p.Style(tokenOf("text"), true) == p.Text {
		t.Error("selected text should be highlighted")
	}

	cfg.Mention = "not-a-color"
	if _, err := NewPalette(cfg); err == nil {
		t.Error("expected error for invalid color")
	}
}

func tokenOf(typ string) token.Token {
	return token.Token{Type: token.Type(typ)}
}
