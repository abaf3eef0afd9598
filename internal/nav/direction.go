package nav

// Direction names a caret movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	WordLeft
	WordRight
	LineStart
	LineEnd
	DocStart
	DocEnd
)

var directionNames = [...]string{
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
	WordLeft:  "wordLeft",
	WordRight: "wordRight",
	LineStart: "lineStart",
	LineEnd:   "lineEnd",
	DocStart:  "docStart",
	DocEnd:    "docEnd",
}

// String returns the direction name.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Vertical reports whether d moves between lines.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// ParseDirection converts a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), true
		}
	}
	return 0, false
}
