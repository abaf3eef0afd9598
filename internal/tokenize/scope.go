package tokenize

import "sort"

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the span length.
func (s Span) Len() int { return s.End - s.Start }

// Overlaps reports whether two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Scope is what a recognizer sees: the whole buffer plus the sorted list of
// ranges not yet claimed by a higher-precedence recognizer.
type Scope struct {
	Text string
	Free []Span
}

// Segments yields each free range with its text.
func (s Scope) Segments(fn func(start int, text string)) {
	for _, f := range s.Free {
		fn(f.Start, s.Text[f.Start:f.End])
	}
}

// IsFree reports whether [start, end) lies inside a single free range.
func (s Scope) IsFree(start, end int) bool {
	if start >= end {
		return false
	}
	i := sort.Search(len(s.Free), func(i int) bool { return s.Free[i].End > start })
	return i < len(s.Free) && s.Free[i].Start <= start && end <= s.Free[i].End
}

// claims is a sorted set of non-overlapping spans.
type claims []Span

func (c claims) overlaps(s Span) bool {
	i := sort.Search(len(c), func(i int) bool { return c[i].End > s.Start })
	return i < len(c) && c[i].Start < s.End
}

func (c *claims) add(s Span) {
	i := sort.Search(len(*c), func(i int) bool { return (*c)[i].Start >= s.Start })
	*c = append(*c, Span{})
	copy((*c)[i+1:], (*c)[i:])
	(*c)[i] = s
}

// complement returns the gaps in [0, n) not covered by c.
func (c claims) complement(n int) []Span {
	var out []Span
	pos := 0
	for _, s := range c {
		if s.Start > pos {
			out = append(out, Span{pos, s.Start})
		}
		pos = s.End
	}
	if pos < n {
		out = append(out, Span{pos, n})
	}
	return out
}
