package layout

import (
	"math"

	"github.com/dshills/richinput/internal/engine/buffer"
	"github.com/dshills/richinput/internal/logging"
	"github.com/dshills/richinput/internal/nav"
	"github.com/dshills/richinput/internal/token"
)

// Fallback metrics used when the Oracle cannot answer.
const (
	DefaultAverageCharWidth = 8
	DefaultLineHeight       = 20
)

// Mapper enforces the coordinate contract on top of an Oracle.
type Mapper struct {
	oracle       Oracle
	avgCharWidth float64
	lineHeight   float64
	logger       *logging.Logger
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithAverageCharWidth sets the character width used by estimates.
func WithAverageCharWidth(w float64) MapperOption {
	return func(m *Mapper) {
		if w > 0 {
			m.avgCharWidth = w
		}
	}
}

// WithLineHeight sets the row height used by estimates.
func WithLineHeight(h float64) MapperOption {
	return func(m *Mapper) {
		if h > 0 {
			m.lineHeight = h
		}
	}
}

// WithLogger sets the logger for fallback diagnostics.
func WithLogger(l *logging.Logger) MapperOption {
	return func(m *Mapper) {
		m.logger = l
	}
}

// NewMapper wraps o. A nil Oracle makes every query an estimate.
func NewMapper(o Oracle, opts ...MapperOption) *Mapper {
	m := &Mapper{
		oracle:       o,
		avgCharWidth: DefaultAverageCharWidth,
		lineHeight:   DefaultLineHeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.Null()
	}
	m.logger = m.logger.WithComponent("layout")
	return m
}

// HitTest returns the caret offset for a pointer at pt. totalWidth is the
// rendered width of the input, used only by the estimate.
func (m *Mapper) HitTest(buf *buffer.Buffer, tokens []token.Token, pt Point, totalWidth float64) int {
	if m.oracle != nil {
		if i, ok := m.oracle.HitTest(pt, tokens); ok {
			return m.settle(buf, tokens, i)
		}
	}
	i := m.estimate(buf, pt, totalWidth)
	m.logger.Debug("hit test at %v estimated as %d", pt, i)
	return m.settle(buf, tokens, i)
}

// estimate places pt proportionally. A multi-line buffer first picks the
// row from the line height and then scales within that line.
func (m *Mapper) estimate(buf *buffer.Buffer, pt Point, totalWidth float64) int {
	start, end := 0, buf.Len()
	if buf.LineCount() > 1 {
		line := int(math.Floor(pt.Y / m.lineHeight))
		line = min(max(line, 0), buf.LineCount()-1)
		start, end = buf.LineStart(line), buf.LineEnd(line)
	}
	n := end - start
	if n == 0 || pt.X <= 0 {
		return start
	}

	if totalWidth > 0 {
		return start + int(math.Round(pt.X/totalWidth*float64(n)))
	}
	cols := int(math.Round(pt.X / m.avgCharWidth))
	return start + len(buffer.TruncateGraphemes(buf.Slice(buffer.Range{Start: start, End: end}), cols))
}

// settle clamps i, moves it to a grapheme boundary and snaps it out of
// atomic tokens.
func (m *Mapper) settle(buf *buffer.Buffer, tokens []token.Token, i int) int {
	c := buf.ClampOffset(i)
	if c != i {
		m.logger.Debug("hit test offset %d clamped to %d", i, c)
	}
	return nav.SnapToBoundary(tokens, buf.FloorBoundary(c))
}

// Measure returns where the caret for index is drawn. Offsets inside an
// atomic token are pinned to its nearer edge first. ok is false when the
// result is an estimate.
func (m *Mapper) Measure(buf *buffer.Buffer, tokens []token.Token, index int) (Point, bool) {
	i := nav.SnapToBoundary(tokens, buf.ClampOffset(index))
	if m.oracle != nil {
		if pt, ok := m.oracle.Measure(i, tokens); ok {
			return pt, true
		}
	}
	p := buf.PointAt(i)
	m.logger.Debug("measure %d estimated at %v", i, p)
	return Point{X: float64(p.Column) * m.avgCharWidth, Y: float64(p.Line) * m.lineHeight}, false
}
