package nav

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/richinput/internal/engine/buffer"
	"github.com/dshills/richinput/internal/token"
)

// SnapToBoundary moves i out of an atomic token's interior to the nearer of
// its edges. Ties go to the start. Offsets already on a boundary are
// returned unchanged.
func SnapToBoundary(tokens []token.Token, i int) int {
	t, ok := token.AtomicAround(tokens, i)
	if !ok {
		return i
	}
	if i-t.Start <= t.End-i {
		return t.Start
	}
	return t.End
}

func snapBackward(tokens []token.Token, i int) int {
	if t, ok := token.AtomicAround(tokens, i); ok {
		return t.Start
	}
	return i
}

func snapForward(tokens []token.Token, i int) int {
	if t, ok := token.AtomicAround(tokens, i); ok {
		return t.End
	}
	return i
}

// MoveLeft returns the caret position one step before i.
func MoveLeft(buf *buffer.Buffer, tokens []token.Token, i int) int {
	i = snapBackward(tokens, buf.ClampOffset(i))
	if i == 0 {
		return 0
	}
	if t, ok := token.AtomicEndingAt(tokens, i); ok {
		return t.Start
	}
	return snapBackward(tokens, buf.PrevBoundary(i))
}

// MoveRight returns the caret position one step after i.
func MoveRight(buf *buffer.Buffer, tokens []token.Token, i int) int {
	i = snapForward(tokens, buf.ClampOffset(i))
	if i == buf.Len() {
		return i
	}
	if t, ok := token.AtomicStartingAt(tokens, i); ok {
		return t.End
	}
	return snapForward(tokens, buf.NextBoundary(i))
}

// MoveUp moves to the previous line keeping goal as the grapheme column.
// A negative goal uses the current column. On the first line the caret goes
// to the start of the buffer.
func MoveUp(buf *buffer.Buffer, tokens []token.Token, i, goal int) int {
	p := buf.PointAt(i)
	if p.Line == 0 {
		return 0
	}
	if goal < 0 {
		goal = p.Column
	}
	return SnapToBoundary(tokens, buf.OffsetAt(buffer.Point{Line: p.Line - 1, Column: goal}))
}

// MoveDown moves to the next line keeping goal as the grapheme column. On
// the last line the caret goes to the end of the text, ignoring trailing
// whitespace.
func MoveDown(buf *buffer.Buffer, tokens []token.Token, i, goal int) int {
	p := buf.PointAt(i)
	if p.Line >= buf.LineCount()-1 {
		return SnapToBoundary(tokens, len(strings.TrimRightFunc(buf.Text(), unicode.IsSpace)))
	}
	if goal < 0 {
		goal = p.Column
	}
	return SnapToBoundary(tokens, buf.OffsetAt(buffer.Point{Line: p.Line + 1, Column: goal}))
}

// LineBounds returns the start and end offsets of the line holding i,
// excluding its terminator.
func LineBounds(buf *buffer.Buffer, i int) (start, end int) {
	line := buf.LineAt(i)
	return buf.LineStart(line), buf.LineEnd(line)
}

// MoveLineStart returns the start of the line holding i.
func MoveLineStart(buf *buffer.Buffer, tokens []token.Token, i int) int {
	start, _ := LineBounds(buf, i)
	return snapBackward(tokens, start)
}

// MoveLineEnd returns the end of the line holding i.
func MoveLineEnd(buf *buffer.Buffer, tokens []token.Token, i int) int {
	_, end := LineBounds(buf, i)
	return snapForward(tokens, end)
}

func isSpaceBefore(text string, i int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return unicode.IsSpace(r)
}

func isSpaceAt(text string, i int) bool {
	r, _ := utf8.DecodeRuneInString(text[i:])
	return unicode.IsSpace(r)
}

// MoveWordLeft skips whitespace then a word backwards. An atomic token
// counts as one word.
func MoveWordLeft(buf *buffer.Buffer, tokens []token.Token, i int) int {
	text := buf.Text()
	i = snapBackward(tokens, buf.ClampOffset(i))

	for i > 0 {
		if t, ok := token.AtomicEndingAt(tokens, i); ok && !t.IsLineBreak() {
			return t.Start
		}
		if !isSpaceBefore(text, i) {
			break
		}
		_, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
	}
	for i > 0 {
		if _, ok := token.AtomicEndingAt(tokens, i); ok || isSpaceBefore(text, i) {
			break
		}
		_, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
	}
	return SnapToBoundary(tokens, buf.FloorBoundary(i))
}

// MoveWordRight skips whitespace then a word forwards. An atomic token
// counts as one word.
func MoveWordRight(buf *buffer.Buffer, tokens []token.Token, i int) int {
	text := buf.Text()
	n := len(text)
	i = snapForward(tokens, buf.ClampOffset(i))

	for i < n {
		if t, ok := token.AtomicStartingAt(tokens, i); ok && !t.IsLineBreak() {
			return t.End
		}
		if !isSpaceAt(text, i) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	for i < n {
		if _, ok := token.AtomicStartingAt(tokens, i); ok || isSpaceAt(text, i) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return SnapToBoundary(tokens, i)
}

// Move dispatches on d. goal is the remembered column for vertical moves,
// or -1.
func Move(buf *buffer.Buffer, tokens []token.Token, i int, d Direction, goal int) int {
	switch d {
	case Left:
		return MoveLeft(buf, tokens, i)
	case Right:
		return MoveRight(buf, tokens, i)
	case Up:
		return MoveUp(buf, tokens, i, goal)
	case Down:
		return MoveDown(buf, tokens, i, goal)
	case WordLeft:
		return MoveWordLeft(buf, tokens, i)
	case WordRight:
		return MoveWordRight(buf, tokens, i)
	case LineStart:
		return MoveLineStart(buf, tokens, i)
	case LineEnd:
		return MoveLineEnd(buf, tokens, i)
	case DocStart:
		return 0
	case DocEnd:
		return buf.Len()
	default:
		return SnapToBoundary(tokens, buf.ClampOffset(i))
	}
}

// BackspaceRange returns the range a backspace at i removes: the atomic
// token ending at i, or the grapheme before it.
func BackspaceRange(buf *buffer.Buffer, tokens []token.Token, i int) buffer.Range {
	i = buf.ClampOffset(i)
	if t, ok := token.AtomicAround(tokens, i); ok {
		return buffer.Range{Start: t.Start, End: t.End}
	}
	if t, ok := token.AtomicEndingAt(tokens, i); ok {
		return buffer.Range{Start: t.Start, End: t.End}
	}
	return buffer.Range{Start: buf.PrevBoundary(i), End: i}
}

// DeleteRange returns the range a forward delete at i removes: the atomic
// token starting at i, or the grapheme after it.
func DeleteRange(buf *buffer.Buffer, tokens []token.Token, i int) buffer.Range {
	i = buf.ClampOffset(i)
	if t, ok := token.AtomicAround(tokens, i); ok {
		return buffer.Range{Start: t.Start, End: t.End}
	}
	if t, ok := token.AtomicStartingAt(tokens, i); ok {
		return buffer.Range{Start: t.Start, End: t.End}
	}
	return buffer.Range{Start: i, End: buf.NextBoundary(i)}
}

// ExpandToTokens grows r to cover every non-text token whose overlap with r
// exceeds threshold of the token's length. Empty ranges are unchanged.
func ExpandToTokens(tokens []token.Token, r buffer.Range, threshold float64) buffer.Range {
	if r.IsEmpty() {
		return r
	}
	out := r
	for _, t := range tokens {
		if t.Type == token.TypeText || t.Len() == 0 {
			continue
		}
		if t.Start >= r.End {
			break
		}
		overlap := r.Intersect(buffer.Range{Start: t.Start, End: t.End}).Len()
		if float64(overlap)/float64(t.Len()) > threshold {
			out = out.Union(buffer.Range{Start: t.Start, End: t.End})
		}
	}
	return out
}
