package token

import (
	"fmt"
	"sort"
	"strings"
)

// IsPlaceholder reports whether tokens is the single empty-buffer placeholder.
func IsPlaceholder(tokens []Token) bool {
	return len(tokens) == 1 && tokens[0].Metadata.Placeholder && tokens[0].Len() == 0
}

// Concat joins every token's RawText in order.
func Concat(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.RawText)
	}
	return b.String()
}

// Validate checks that tokens is sorted, non-overlapping, covers
// [0, len(buffer)) exactly and that each RawText matches its span.
func Validate(buffer string, tokens []Token) error {
	if buffer == "" {
		if len(tokens) == 0 || IsPlaceholder(tokens) {
			return nil
		}
		return fmt.Errorf("%w: %d tokens for empty buffer", ErrCoverage, len(tokens))
	}
	pos := 0
	for i, t := range tokens {
		if !t.Type.Valid() {
			return fmt.Errorf("%w: token %d has type %q", ErrInvalidType, i, t.Type)
		}
		if t.Start < pos {
			return fmt.Errorf("%w: token %d starts at %d, previous ended at %d", ErrOverlap, i, t.Start, pos)
		}
		if t.Start > pos {
			return fmt.Errorf("%w: gap [%d,%d) before token %d", ErrCoverage, pos, t.Start, i)
		}
		if t.End <= t.Start || t.End > len(buffer) {
			return fmt.Errorf("%w: token %d has span [%d,%d)", ErrSpan, i, t.Start, t.End)
		}
		if buffer[t.Start:t.End] != t.RawText {
			return fmt.Errorf("%w: token %d raw %q, buffer %q", ErrRawText, i, t.RawText, buffer[t.Start:t.End])
		}
		pos = t.End
	}
	if pos != len(buffer) {
		return fmt.Errorf("%w: tokens end at %d, buffer length %d", ErrCoverage, pos, len(buffer))
	}
	return nil
}

// Index returns the position in tokens of the token covering offset i, or
// -1. tokens must be sorted by Start.
func Index(tokens []Token, i int) int {
	n := sort.Search(len(tokens), func(k int) bool { return tokens[k].End > i })
	if n < len(tokens) && tokens[n].Covers(i) {
		return n
	}
	return -1
}

// At returns the token covering offset i.
func At(tokens []Token, i int) (Token, bool) {
	if n := Index(tokens, i); n >= 0 {
		return tokens[n], true
	}
	return Token{}, false
}

// AtomicAround returns the atomic token that i lies strictly inside.
func AtomicAround(tokens []Token, i int) (Token, bool) {
	t, ok := At(tokens, i)
	if !ok || !t.Atomic() || !t.Interior(i) {
		return Token{}, false
	}
	return t, true
}

// AtomicEndingAt returns the atomic token whose End is i.
func AtomicEndingAt(tokens []Token, i int) (Token, bool) {
	if i <= 0 {
		return Token{}, false
	}
	t, ok := At(tokens, i-1)
	if !ok || !t.Atomic() || t.End != i {
		return Token{}, false
	}
	return t, true
}

// AtomicStartingAt returns the atomic token whose Start is i.
func AtomicStartingAt(tokens []Token, i int) (Token, bool) {
	t, ok := At(tokens, i)
	if !ok || !t.Atomic() || t.Start != i {
		return Token{}, false
	}
	return t, true
}

// Clone deep-copies a token slice.
func Clone(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = t.Clone()
	}
	return out
}

// Equal compares two token slices element by element.
func Equal(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// CountType returns how many tokens have type t.
func CountType(tokens []Token, t Type) int {
	n := 0
	for _, tok := range tokens {
		if tok.Type == t {
			n++
		}
	}
	return n
}
