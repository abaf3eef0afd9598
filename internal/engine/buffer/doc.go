// Package buffer holds the canonical plain-text document and converts
// between byte offsets and line/column points.
//
// Offsets are byte offsets into the UTF-8 text. Columns are counted in
// grapheme clusters, so an emoji with modifiers or a CRLF pair is a single
// step:
//
//	buf := buffer.New("héllo\r\nwörld")
//	buf.PointAt(8)              // (1:0)
//	buf.NextBoundary(0)         // 1
//	buf.Replace(buffer.Range{Start: 0, End: 1}, "H")
//
// Line terminators are "\n", "\r\n" and a lone "\r".
//
// A Buffer is not safe for concurrent mutation; the engine that owns it
// serialises access.
package buffer
