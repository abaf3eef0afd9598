package layout

import (
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/richinput/internal/token"
)

// DefaultTabWidth is the tab stop spacing of Monospace when TabWidth is
// not set.
const DefaultTabWidth = 4

// Monospace lays tokens out on a cell grid starting at Origin, one row per
// buffer line. Text advances by the cell width of each grapheme cluster;
// an atomic token occupies the width of its label and offsets inside it are
// interpolated.
type Monospace struct {
	Origin   Point
	TabWidth int

	// Label gives the displayed form of a token. Nil uses the package
	// Label function.
	Label func(token.Token) string
}

// stop is a caret position the grid can show.
type stop struct {
	index int
	col   int
	row   int
}

func (m *Monospace) label(t token.Token) string {
	if m.Label != nil {
		return m.Label(t)
	}
	return Label(t)
}

func (m *Monospace) tabWidth() int {
	if m.TabWidth > 0 {
		return m.TabWidth
	}
	return DefaultTabWidth
}

func (m *Monospace) stops(tokens []token.Token) []stop {
	out := []stop{{}}
	if len(tokens) == 0 || token.IsPlaceholder(tokens) {
		return out
	}
	out[0].index = tokens[0].Start

	col, row := 0, 0
	for _, t := range tokens {
		switch {
		case t.IsLineBreak():
			col, row = 0, row+1
			out = append(out, stop{index: t.End, col: col, row: row})
		case t.Type == token.TypeText:
			rest := t.RawText
			idx := t.Start
			state := -1
			var cluster string
			for rest != "" {
				cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
				if cluster == "\t" {
					tw := m.tabWidth()
					col += tw - col%tw
				} else {
					col += runewidth.StringWidth(cluster)
				}
				idx += len(cluster)
				out = append(out, stop{index: idx, col: col, row: row})
			}
		default:
			col += runewidth.StringWidth(m.label(t))
			out = append(out, stop{index: t.End, col: col, row: row})
		}
	}
	return out
}

func (m *Monospace) point(col, row float64) Point {
	return Point{X: m.Origin.X + col, Y: m.Origin.Y + row}
}

// HitTest returns the stop nearest to pt on pt's row. Rows above or below
// the text clamp to the first or last row. Ties go to the earlier offset.
func (m *Monospace) HitTest(pt Point, tokens []token.Token) (int, bool) {
	stops := m.stops(tokens)
	lastRow := stops[len(stops)-1].row
	row := int(math.Floor(pt.Y - m.Origin.Y))
	row = min(max(row, 0), lastRow)
	x := pt.X - m.Origin.X

	best, bestDist := -1, math.Inf(1)
	for _, s := range stops {
		if s.row != row {
			continue
		}
		if d := math.Abs(float64(s.col) - x); d < bestDist {
			best, bestDist = s.index, d
		}
	}
	return best, best >= 0
}

// Measure returns the cell where the caret for index is drawn. Offsets
// inside an atomic token are interpolated across its label.
func (m *Monospace) Measure(index int, tokens []token.Token) (Point, bool) {
	stops := m.stops(tokens)
	if index < stops[0].index || index > stops[len(stops)-1].index {
		return Point{}, false
	}

	prev := stops[0]
	for _, s := range stops {
		if s.index == index {
			return m.point(float64(s.col), float64(s.row)), true
		}
		if s.index > index {
			if t, ok := token.AtomicAround(tokens, index); ok && s.row == prev.row {
				frac := float64(index-t.Start) / float64(t.Len())
				col := float64(prev.col) + frac*float64(s.col-prev.col)
				return m.point(col, float64(prev.row)), true
			}
			break
		}
		prev = s
	}
	return m.point(float64(prev.col), float64(prev.row)), true
}

// Width returns the widest row in cells.
func (m *Monospace) Width(tokens []token.Token) int {
	w := 0
	for _, s := range m.stops(tokens) {
		w = max(w, s.col)
	}
	return w
}
