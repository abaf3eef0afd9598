// Package cursor provides the caret position and selection types shared by
// the engine, navigation and layout packages.
//
// A Position carries a byte Index into the buffer together with the derived
// Line and grapheme Column. A Selection is a Start/End pair of positions with
// a Direction recording which end the user is moving:
//
//	pos := cursor.PositionAt(buf, 10)
//	sel := cursor.Collapsed(pos)           // caret at 10, DirectionNone
//	sel = sel.Extend(cursor.PositionAt(buf, 4))
//	sel.Direction                          // DirectionBackward
//	sel.Head().Index                       // 4
//	sel.Anchor().Index                     // 10
//
// Both types are immutable values and safe to copy.
package cursor
