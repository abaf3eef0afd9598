// Package history provides snapshot-based undo/redo for the document engine.
//
// Every entry is an immutable snapshot of the buffer text and selection.
// The engine saves the state before and after each mutation; consecutive
// snapshots with identical text are stored once.
//
// # History Stack
//
//	h := history.New(100)
//	h.Save(history.Entry{Buffer: "", Selection: sel0})
//	h.Save(history.Entry{Buffer: "a", Selection: sel1})
//
//	e, err := h.Undo() // e.Buffer == ""
//	e, err = h.Redo()  // e.Buffer == "a"
//
// Saving while the index is behind the newest entry discards the redo tail.
// When the stack exceeds its maximum the oldest entries are dropped.
package history
