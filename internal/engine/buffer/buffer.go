package buffer

import (
	"sort"
	"strings"
)

// Buffer is a plain-text document with a line index.
type Buffer struct {
	text  string
	lines []int // start offset of each line
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// Text returns the full content.
func (b *Buffer) Text() string { return b.text }

// String implements fmt.Stringer.
func (b *Buffer) String() string { return b.text }

// Len returns the content length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool { return b.text == "" }

// SetText replaces the whole content.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.reindex()
}

// ClampOffset limits offset to [0, Len()].
func (b *Buffer) ClampOffset(offset int) int {
	return min(max(offset, 0), len(b.text))
}

// ClampRange orders and limits r to the buffer.
func (b *Buffer) ClampRange(r Range) Range {
	return r.Clamp(len(b.text))
}

// Slice returns the text in r after clamping.
func (b *Buffer) Slice(r Range) string {
	r = b.ClampRange(r)
	return b.text[r.Start:r.End]
}

// Replace substitutes the clamped range r with s and returns the range the
// new text occupies.
func (b *Buffer) Replace(r Range, s string) Range {
	r = b.ClampRange(r)
	var sb strings.Builder
	sb.Grow(len(b.text) - r.Len() + len(s))
	sb.WriteString(b.text[:r.Start])
	sb.WriteString(s)
	sb.WriteString(b.text[r.End:])
	b.SetText(sb.String())
	return Range{Start: r.Start, End: r.Start + len(s)}
}

// Insert inserts s at offset.
func (b *Buffer) Insert(offset int, s string) Range {
	return b.Replace(Range{Start: offset, End: offset}, s)
}

// Delete removes the clamped range r.
func (b *Buffer) Delete(r Range) Range {
	return b.Replace(r, "")
}

func (b *Buffer) reindex() {
	b.lines = b.lines[:0]
	b.lines = append(b.lines, 0)
	for i := 0; i < len(b.text); i++ {
		switch b.text[i] {
		case '\n':
			b.lines = append(b.lines, i+1)
		case '\r':
			if i+1 < len(b.text) && b.text[i+1] == '\n' {
				i++
			}
			b.lines = append(b.lines, i+1)
		}
	}
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int { return len(b.lines) }

func (b *Buffer) clampLine(line int) int {
	return min(max(line, 0), len(b.lines)-1)
}

// LineStart returns the offset of the first byte of line.
func (b *Buffer) LineStart(line int) int {
	return b.lines[b.clampLine(line)]
}

// LineEnd returns the offset just before line's terminator.
func (b *Buffer) LineEnd(line int) int {
	line = b.clampLine(line)
	if line == len(b.lines)-1 {
		return len(b.text)
	}
	next := b.lines[line+1]
	if next >= 2 && b.text[next-2:next] == "\r\n" {
		return next - 2
	}
	return next - 1
}

// LineText returns line without its terminator.
func (b *Buffer) LineText(line int) string {
	return b.text[b.LineStart(line):b.LineEnd(line)]
}

// LineAt returns the line containing offset. A terminator belongs to the
// line it ends.
func (b *Buffer) LineAt(offset int) int {
	offset = b.ClampOffset(offset)
	return sort.Search(len(b.lines), func(i int) bool { return b.lines[i] > offset }) - 1
}

// PointAt converts an offset to a line and grapheme column. Offsets inside
// a terminator report the line's end column.
func (b *Buffer) PointAt(offset int) Point {
	offset = b.ClampOffset(offset)
	line := b.LineAt(offset)
	start := b.lines[line]
	end := min(offset, b.LineEnd(line))
	return Point{Line: line, Column: GraphemeCount(b.text[start:end])}
}

// OffsetAt converts a point to an offset. The line is clamped to the
// buffer and the column to the line's length.
func (b *Buffer) OffsetAt(p Point) int {
	line := b.clampLine(p.Line)
	start := b.lines[line]
	prefix := TruncateGraphemes(b.text[start:b.LineEnd(line)], max(p.Column, 0))
	return start + len(prefix)
}
