package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/richinput/internal/layout"
	"github.com/dshills/richinput/internal/token"
)

// draw renders the engine into the screen. The last row is the status line
// when it is enabled.
func (h *Host) draw() {
	s := h.screen
	s.Clear()
	width, height := s.Size()
	rows := height
	if h.status {
		rows--
	}

	st := h.engine.State()
	toks := st.Tokens
	cur := st.Selection.Head().Index

	if p, ok := h.grid.Measure(cur, toks); ok {
		h.scrollTo(int(p.Y)+h.scroll, rows)
	}
	h.grid.Origin = layout.Point{Y: float64(-h.scroll)}

	if token.IsPlaceholder(toks) {
		h.putString(0, 0, width, toks[0].Content, h.palette.Placeholder)
	} else {
		h.drawTokens(toks, st.Selection.Start.Index, st.Selection.End.Index, width, rows)
	}

	if p, ok := h.grid.Measure(cur, toks); ok && int(p.Y) >= 0 && int(p.Y) < rows {
		s.ShowCursor(int(p.X), int(p.Y))
	} else {
		s.HideCursor()
	}

	if h.status {
		h.drawStatus(width, height-1)
	}
	s.Show()
}

// scrollTo keeps row visible in a window of n rows.
func (h *Host) scrollTo(row, n int) {
	if n <= 0 {
		return
	}
	if row < h.scroll {
		h.scroll = row
	}
	if row >= h.scroll+n {
		h.scroll = row - n + 1
	}
}

func (h *Host) drawTokens(toks []token.Token, selStart, selEnd, width, rows int) {
	col, row := 0, -h.scroll
	tw := h.grid.TabWidth
	if tw <= 0 {
		tw = layout.DefaultTabWidth
	}

	for _, t := range toks {
		switch {
		case t.IsLineBreak():
			col, row = 0, row+1
		case t.Type == token.TypeText:
			idx := t.Start
			rest, state := t.RawText, -1
			var cluster string
			for rest != "" {
				cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
				style := h.palette.Style(t, idx >= selStart && idx < selEnd)
				if cluster == "\t" {
					next := col + tw - col%tw
					for ; col < next; col++ {
						h.put(col, row, width, rows, " ", style)
					}
				} else {
					h.put(col, row, width, rows, cluster, style)
					col += runewidth.StringWidth(cluster)
				}
				idx += len(cluster)
			}
		default:
			selected := selStart < selEnd && selStart <= t.Start && t.End <= selEnd
			style := h.palette.Style(t, selected)
			label := layout.Label(t)
			rest, state := label, -1
			var cluster string
			for rest != "" {
				cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
				h.put(col, row, width, rows, cluster, style)
				col += runewidth.StringWidth(cluster)
			}
		}
	}
}

// put draws one grapheme cluster if the cell is on screen.
func (h *Host) put(x, y, width, rows int, cluster string, style tcell.Style) {
	if x < 0 || y < 0 || x >= width || y >= rows || cluster == "" {
		return
	}
	runes := []rune(cluster)
	h.screen.SetContent(x, y, runes[0], runes[1:], style)
}

func (h *Host) putString(x, y, width int, s string, style tcell.Style) {
	rest, state := s, -1
	var cluster string
	for rest != "" && x < width {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		runes := []rune(cluster)
		h.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += runewidth.StringWidth(cluster)
	}
}

func (h *Host) drawStatus(width, y int) {
	for x := 0; x < width; x++ {
		h.screen.SetContent(x, y, ' ', nil, h.palette.Status)
	}
	h.putString(0, y, width, h.statusText(), h.palette.Status)
}

func (h *Host) statusText() string {
	st := h.engine.State()
	head := st.Selection.Head()
	text := fmt.Sprintf(" Ln %d, Col %d", head.Line+1, head.Column+1)
	if !st.Selection.IsEmpty() {
		text += fmt.Sprintf(" (%d selected)", st.Selection.Len())
	}
	if t, ok := h.engine.TokenAt(head.Index); ok && t.Type != token.TypeText {
		text += fmt.Sprintf(" | %s %q", t.Type, t.Content)
	}
	text += fmt.Sprintf(" | %d tokens", len(st.Tokens))
	if h.engine.CanUndo() {
		text += " | undo"
	}
	return text
}
