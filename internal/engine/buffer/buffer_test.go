package buffer

import "testing"

func TestLineIndex(t *testing.T) {
	b := New("one\ntwo\r\nthree\rfour")
	if b.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", b.LineCount())
	}
	want := []string{"one", "two", "three", "four"}
	for i, w := range want {
		if got := b.LineText(i); got != w {
			t.Errorf("LineText(%d) = %q, want %q", i, got, w)
		}
	}
	if b.LineStart(2) != 9 {
		t.Errorf("LineStart(2) = %d, want 9", b.LineStart(2))
	}
	if b.LineEnd(1) != 7 {
		t.Errorf("LineEnd(1) = %d, want 7", b.LineEnd(1))
	}
	// The CRLF belongs to line 1.
	if b.LineAt(8) != 1 {
		t.Errorf("LineAt(8) = %d, want 1", b.LineAt(8))
	}
}

func TestEmptyBuffer(t *testing.T) {
	b := New("")
	if !b.IsEmpty() || b.LineCount() != 1 {
		t.Fatalf("empty buffer: IsEmpty=%v LineCount=%d", b.IsEmpty(), b.LineCount())
	}
	if p := b.PointAt(10); p != (Point{}) {
		t.Errorf("PointAt(10) = %v, want (0:0)", p)
	}
	if b.NextBoundary(0) != 0 || b.PrevBoundary(0) != 0 {
		t.Error("boundaries of empty buffer should be 0")
	}
}

func TestPointAtAndOffsetAt(t *testing.T) {
	b := New("héllo\r\nwörld")
	tests := []struct {
		offset int
		point  Point
	}{
		{0, Point{0, 0}},
		{3, Point{0, 2}},
		{6, Point{0, 5}},
		{8, Point{1, 0}},
		{len(b.Text()), Point{1, 5}},
	}
	for _, tt := range tests {
		if got := b.PointAt(tt.offset); got != tt.point {
			t.Errorf("PointAt(%d) = %v, want %v", tt.offset, got, tt.point)
		}
		if got := b.OffsetAt(tt.point); got != tt.offset {
			t.Errorf("OffsetAt(%v) = %d, want %d", tt.point, got, tt.offset)
		}
	}

	if got := b.OffsetAt(Point{0, 99}); got != 6 {
		t.Errorf("column clamp: got %d, want 6", got)
	}
	if got := b.OffsetAt(Point{9, 1}); got != 9 {
		t.Errorf("line clamp: got %d, want 9", got)
	}
}

func TestGraphemeBoundaries(t *testing.T) {
	// thumbs up with skin tone, then CRLF, then "a"
	text := "👍🏽\r\na"
	b := New(text)
	emoji := len("👍🏽")

	if got := b.NextBoundary(0); got != emoji {
		t.Errorf("NextBoundary(0) = %d, want %d", got, emoji)
	}
	if got := b.NextBoundary(emoji); got != emoji+2 {
		t.Errorf("CRLF should be one step: got %d, want %d", got, emoji+2)
	}
	if got := b.PrevBoundary(emoji + 2); got != emoji {
		t.Errorf("PrevBoundary over CRLF = %d, want %d", got, emoji)
	}
	if got := b.PrevBoundary(emoji); got != 0 {
		t.Errorf("PrevBoundary(%d) = %d, want 0", emoji, got)
	}
	if got := b.FloorBoundary(2); got != 0 {
		t.Errorf("FloorBoundary(2) = %d, want 0", got)
	}
	if got := b.NextBoundary(len(text)); got != len(text) {
		t.Errorf("NextBoundary at end = %d", got)
	}
	if GraphemeCount(text) != 3 {
		t.Errorf("GraphemeCount = %d, want 3", GraphemeCount(text))
	}
}

func TestTruncateGraphemes(t *testing.T) {
	if got := TruncateGraphemes("a👍🏽b", 2); got != "a👍🏽" {
		t.Errorf("TruncateGraphemes = %q", got)
	}
	if got := TruncateGraphemes("abc", 0); got != "" {
		t.Errorf("TruncateGraphemes(0) = %q", got)
	}
	if got := TruncateGraphemes("abc", 10); got != "abc" {
		t.Errorf("TruncateGraphemes(10) = %q", got)
	}
}

func TestReplace(t *testing.T) {
	b := New("hello world")
	r := b.Replace(Range{Start: 6, End: 11}, "there")
	if b.Text() != "hello there" || r != (Range{Start: 6, End: 11}) {
		t.Errorf("Replace: text=%q range=%v", b.Text(), r)
	}

	b.Insert(0, "x\n")
	if b.LineCount() != 2 || b.LineText(1) != "hello there" {
		t.Errorf("line index not rebuilt: %d lines", b.LineCount())
	}

	// Reversed and out-of-range ranges are clamped.
	b.Delete(Range{Start: 100, End: 2})
	if b.Text() != "x\n" {
		t.Errorf("Delete clamped = %q", b.Text())
	}
}

func TestRange(t *testing.T) {
	r := NewRange(5, 2)
	if r.Start != 2 || r.End != 5 {
		t.Fatalf("NewRange did not order ends: %v", r)
	}
	if !r.Contains(2) || r.Contains(5) {
		t.Error("Contains should be half-open")
	}
	if !r.Overlaps(Range{4, 8}) || r.Overlaps(Range{5, 8}) {
		t.Error("Overlaps wrong at edges")
	}
	if got := r.Intersect(Range{4, 8}); got != (Range{4, 5}) {
		t.Errorf("Intersect = %v", got)
	}
	if got := (Range{-3, 40}).Clamp(10); got != (Range{0, 10}) {
		t.Errorf("Clamp = %v", got)
	}
}
