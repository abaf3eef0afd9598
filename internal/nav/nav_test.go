package nav

import (
	"testing"

	"github.com/dshills/richinput/internal/engine/buffer"
	"github.com/dshills/richinput/internal/token"
	"github.com/dshills/richinput/internal/tokenize"
)

// sample tokenizes as
// text[0,3) hashtag[3,7) text[7,13) break[13,14) text[14,19) emoji[19,25) text[25,27)
const sample = "hi #tag there\nnext :fire: x"

func setup(t *testing.T, text string) (*buffer.Buffer, []token.Token) {
	t.Helper()
	toks := tokenize.NewPipeline().Tokenize(text)
	if err := token.Validate(text, toks); err != nil {
		t.Fatalf("invalid token set: %v", err)
	}
	return buffer.New(text), toks
}

func TestSnapToBoundary(t *testing.T) {
	_, toks := setup(t, sample)
	tests := []struct{ in, want int }{
		{3, 3}, {4, 3}, {5, 3}, {6, 7}, {7, 7}, {10, 10}, {22, 19}, {23, 25},
	}
	for _, tt := range tests {
		if got := SnapToBoundary(toks, tt.in); got != tt.want {
			t.Errorf("SnapToBoundary(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHorizontalMoves(t *testing.T) {
	buf, toks := setup(t, sample)
	tests := []struct {
		name string
		fn   func(*buffer.Buffer, []token.Token, int) int
		in   int
		want int
	}{
		{"right into hashtag", MoveRight, 3, 7},
		{"right before hashtag", MoveRight, 2, 3},
		{"right over break", MoveRight, 13, 14},
		{"right at end", MoveRight, 27, 27},
		{"left over hashtag", MoveLeft, 7, 3},
		{"left over emoji", MoveLeft, 25, 19},
		{"left over break", MoveLeft, 14, 13},
		{"left at start", MoveLeft, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(buf, toks, tt.in); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGraphemeSteps(t *testing.T) {
	buf, toks := setup(t, "👍🏽x\r\ny")
	thumb := len("👍🏽")
	if got := MoveRight(buf, toks, 0); got != thumb {
		t.Errorf("MoveRight over emoji cluster = %d, want %d", got, thumb)
	}
	if got := MoveRight(buf, toks, thumb+1); got != thumb+3 {
		t.Errorf("CRLF should be one step: got %d", got)
	}
	if got := MoveLeft(buf, toks, thumb+3); got != thumb+1 {
		t.Errorf("MoveLeft over CRLF = %d", got)
	}
}

func TestVerticalMoves(t *testing.T) {
	buf, toks := setup(t, sample)

	// line 1 column 6 maps to offset 6 on line 0, inside the hashtag.
	if got := MoveUp(buf, toks, 20, -1); got != 7 {
		t.Errorf("MoveUp = %d, want 7", got)
	}
	if got := MoveUp(buf, toks, 20, 1); got != 1 {
		t.Errorf("MoveUp with goal = %d, want 1", got)
	}
	if got := MoveUp(buf, toks, 2, -1); got != 0 {
		t.Errorf("MoveUp on first line = %d, want 0", got)
	}
	if got := MoveDown(buf, toks, 1, -1); got != 15 {
		t.Errorf("MoveDown = %d, want 15", got)
	}
	if got := MoveDown(buf, toks, 15, -1); got != 27 {
		t.Errorf("MoveDown on last line = %d, want 27", got)
	}

	trailing, ttoks := setup(t, "a\nbc   ")
	if got := MoveDown(trailing, ttoks, 3, -1); got != 4 {
		t.Errorf("MoveDown ignores trailing whitespace: got %d, want 4", got)
	}
}

func TestWordMoves(t *testing.T) {
	buf, toks := setup(t, sample)
	tests := []struct {
		name string
		fn   func(*buffer.Buffer, []token.Token, int) int
		in   int
		want int
	}{
		{"word left in text", MoveWordLeft, 13, 8},
		{"word left onto hashtag", MoveWordLeft, 8, 3},
		{"word left across break", MoveWordLeft, 14, 8},
		{"word right in text", MoveWordRight, 0, 2},
		{"word right onto hashtag", MoveWordRight, 2, 7},
		{"word right to end", MoveWordRight, 25, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(buf, toks, tt.in); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLineMoves(t *testing.T) {
	buf, toks := setup(t, sample)
	if got := MoveLineStart(buf, toks, 20); got != 14 {
		t.Errorf("MoveLineStart = %d", got)
	}
	if got := MoveLineEnd(buf, toks, 20); got != 27 {
		t.Errorf("MoveLineEnd = %d", got)
	}
	if got := MoveLineEnd(buf, toks, 1); got != 13 {
		t.Errorf("MoveLineEnd first line = %d", got)
	}
	if s, e := LineBounds(buf, 13); s != 0 || e != 13 {
		t.Errorf("LineBounds(13) = %d,%d", s, e)
	}
}

func TestAtomicityProperty(t *testing.T) {
	buf, toks := setup(t, sample+" @[Ann|42|author] ![link](https://example.com/a)")
	dirs := []Direction{Left, Right, Up, Down, WordLeft, WordRight, LineStart, LineEnd, DocStart, DocEnd}
	for i := 0; i <= buf.Len(); i++ {
		for _, d := range dirs {
			got := Move(buf, toks, i, d, -1)
			if _, inside := token.AtomicAround(toks, got); inside {
				t.Fatalf("Move(%d, %v) = %d lands inside an atomic token", i, d, got)
			}
			if got < 0 || got > buf.Len() {
				t.Fatalf("Move(%d, %v) = %d out of range", i, d, got)
			}
		}
	}
}

func TestDeletionRanges(t *testing.T) {
	buf, toks := setup(t, sample)
	tests := []struct {
		name string
		got  buffer.Range
		want buffer.Range
	}{
		{"backspace hashtag", BackspaceRange(buf, toks, 7), buffer.Range{Start: 3, End: 7}},
		{"backspace grapheme", BackspaceRange(buf, toks, 2), buffer.Range{Start: 1, End: 2}},
		{"backspace at start", BackspaceRange(buf, toks, 0), buffer.Range{}},
		{"backspace inside", BackspaceRange(buf, toks, 5), buffer.Range{Start: 3, End: 7}},
		{"delete emoji", DeleteRange(buf, toks, 19), buffer.Range{Start: 19, End: 25}},
		{"delete break", DeleteRange(buf, toks, 13), buffer.Range{Start: 13, End: 14}},
		{"delete at end", DeleteRange(buf, toks, 27), buffer.Range{Start: 27, End: 27}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	// Removing any computed range leaves no partial atomic token behind.
	for i := 0; i <= buf.Len(); i++ {
		for _, r := range []buffer.Range{BackspaceRange(buf, toks, i), DeleteRange(buf, toks, i)} {
			for _, tok := range toks {
				if !tok.Atomic() {
					continue
				}
				in := buffer.Range{Start: tok.Start, End: tok.End}
				if r.Overlaps(in) && !r.ContainsRange(in) {
					t.Fatalf("range %v at %d cuts token %v", r, i, in)
				}
			}
		}
	}
}

func TestExpandToTokens(t *testing.T) {
	_, toks := setup(t, sample)
	if got := ExpandToTokens(toks, buffer.Range{Start: 4, End: 8}, 0.5); got != (buffer.Range{Start: 3, End: 8}) {
		t.Errorf("75%% overlap: got %v", got)
	}
	if got := ExpandToTokens(toks, buffer.Range{Start: 5, End: 8}, 0.5); got != (buffer.Range{Start: 5, End: 8}) {
		t.Errorf("50%% overlap should not expand: got %v", got)
	}
	if got := ExpandToTokens(toks, buffer.Range{Start: 5, End: 5}, 0.5); !got.IsEmpty() {
		t.Errorf("empty range changed: %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	for d := Left; d <= DocEnd; d++ {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("unknown direction accepted")
	}
}
