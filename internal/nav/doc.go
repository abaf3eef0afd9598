// Package nav computes caret movement and deletion ranges over a buffer and
// its token set.
//
// Atomic tokens (everything except plain text, plus standalone line breaks)
// behave as single characters: the caret never rests strictly inside one,
// arrow keys step over them whole, and backspace or delete removes them in
// one keystroke. Plain text moves one grapheme cluster at a time.
//
// Every function takes byte offsets and returns an offset that lies on a
// grapheme boundary outside any atomic token's interior.
package nav
