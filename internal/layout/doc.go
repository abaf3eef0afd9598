// Package layout maps between screen coordinates and buffer offsets.
//
// Rendering is the host's business, so the host supplies an Oracle that
// answers two questions about its current layout: which offset lies under
// a point, and where an offset is drawn. A Mapper wraps the Oracle and
// guarantees what the engine relies on:
//
//   - hit-test results are clamped to the buffer, moved to a grapheme
//     boundary and snapped out of atomic tokens;
//   - when the Oracle cannot answer, the Mapper estimates from the pointer's
//     share of the total width;
//   - caret positions inside an atomic token are pinned to its nearer edge
//     before being measured.
//
// Monospace is an Oracle for cell grids such as terminals.
package layout
