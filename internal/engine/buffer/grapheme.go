package buffer

import "github.com/rivo/uniseg"

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// TruncateGraphemes returns the longest prefix of s holding at most n
// grapheme clusters.
func TruncateGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	rest := s
	state := -1
	for i := 0; i < n && rest != ""; i++ {
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	return s[:len(s)-len(rest)]
}

// walk calls fn with the end offset of every grapheme cluster, starting at
// from (which must be a boundary), until fn returns false.
func (b *Buffer) walk(from int, fn func(end int) bool) {
	rest := b.text[from:]
	state := -1
	pos := from
	var cluster string
	for rest != "" {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		if !fn(pos) {
			return
		}
	}
}

// NextBoundary returns the first grapheme boundary after offset.
func (b *Buffer) NextBoundary(offset int) int {
	offset = b.ClampOffset(offset)
	if offset == len(b.text) {
		return offset
	}
	next := len(b.text)
	b.walk(b.LineStart(b.LineAt(offset)), func(end int) bool {
		if end > offset {
			next = end
			return false
		}
		return true
	})
	return next
}

// PrevBoundary returns the last grapheme boundary before offset.
func (b *Buffer) PrevBoundary(offset int) int {
	offset = b.ClampOffset(offset)
	if offset == 0 {
		return 0
	}
	start := b.LineStart(b.LineAt(offset - 1))
	prev := start
	b.walk(start, func(end int) bool {
		if end >= offset {
			return false
		}
		prev = end
		return true
	})
	return prev
}

// FloorBoundary returns the largest grapheme boundary <= offset.
func (b *Buffer) FloorBoundary(offset int) int {
	offset = b.ClampOffset(offset)
	start := b.LineStart(b.LineAt(offset))
	floor := start
	if offset == start {
		return start
	}
	b.walk(start, func(end int) bool {
		if end > offset {
			return false
		}
		floor = end
		return true
	})
	return floor
}
