package cursor

import (
	"fmt"

	"github.com/dshills/richinput/internal/engine/buffer"
)

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Direction records which end of a selection is active.
type Direction int

const (
	// DirectionNone is used for collapsed selections and programmatic ranges.
	DirectionNone Direction = iota
	// DirectionForward means End is the head.
	DirectionForward
	// DirectionBackward means Start is the head.
	DirectionBackward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// ParseDirection converts a name produced by String back to a Direction.
// Unknown names map to DirectionNone.
func ParseDirection(s string) Direction {
	switch s {
	case "forward":
		return DirectionForward
	case "backward":
		return DirectionBackward
	default:
		return DirectionNone
	}
}

// Position is a caret location. Line and Column are derived from Index.
type Position struct {
	Index  int
	Line   int
	Column int
}

// PositionAt builds a Position for offset, clamped to buf.
func PositionAt(buf *buffer.Buffer, offset int) Position {
	offset = buf.ClampOffset(offset)
	p := buf.PointAt(offset)
	return Position{Index: offset, Line: p.Line, Column: p.Column}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d(%d:%d)", p.Index, p.Line, p.Column)
}

// Selection is a range of the buffer with a direction. When Start and End
// share an index the selection is a caret.
type Selection struct {
	Start     Position
	End       Position
	Direction Direction
}

// Collapsed returns a caret selection at p.
func Collapsed(p Position) Selection {
	return Selection{Start: p, End: p}
}

// FromAnchorHead builds a selection from the fixed anchor and the moving
// head, ordering the ends and setting the direction.
func FromAnchorHead(anchor, head Position) Selection {
	switch {
	case head.Index > anchor.Index:
		return Selection{Start: anchor, End: head, Direction: DirectionForward}
	case head.Index < anchor.Index:
		return Selection{Start: head, End: anchor, Direction: DirectionBackward}
	default:
		return Collapsed(head)
	}
}

// Span returns a forward selection over r resolved against buf.
func Span(buf *buffer.Buffer, r Range) Selection {
	r = buf.ClampRange(r)
	return FromAnchorHead(PositionAt(buf, r.Start), PositionAt(buf, r.End))
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Start.Index == s.End.Index
}

// Len returns the selection length in bytes.
func (s Selection) Len() int {
	return s.End.Index - s.Start.Index
}

// Range returns the selected byte range.
func (s Selection) Range() Range {
	return Range{Start: s.Start.Index, End: s.End.Index}
}

// Head returns the end that moves when the selection is extended.
func (s Selection) Head() Position {
	if s.Direction == DirectionBackward {
		return s.Start
	}
	return s.End
}

// Anchor returns the fixed end.
func (s Selection) Anchor() Position {
	if s.Direction == DirectionBackward {
		return s.End
	}
	return s.Start
}

// Extend keeps the anchor and moves the head to p.
func (s Selection) Extend(p Position) Selection {
	return FromAnchorHead(s.Anchor(), p)
}

// Collapse returns a caret at the head.
func (s Selection) Collapse() Selection {
	return Collapsed(s.Head())
}

// Contains returns true if offset lies in [Start, End).
func (s Selection) Contains(offset int) bool {
	return offset >= s.Start.Index && offset < s.End.Index
}

// Resolve recomputes Line and Column of both ends against buf, clamping
// indices that fall outside it.
func (s Selection) Resolve(buf *buffer.Buffer) Selection {
	start := PositionAt(buf, s.Start.Index)
	end := PositionAt(buf, s.End.Index)
	if end.Index < start.Index {
		start, end = end, start
	}
	out := Selection{Start: start, End: end, Direction: s.Direction}
	if out.IsEmpty() {
		out.Direction = DirectionNone
	}
	return out
}

// Equal compares indices and direction.
func (s Selection) Equal(other Selection) bool {
	return s.Start.Index == other.Start.Index &&
		s.End.Index == other.End.Index &&
		s.Direction == other.Direction
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Start.Index)
	}
	dir := "→"
	if s.Direction == DirectionBackward {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor().Index, dir, s.Head().Index)
}
