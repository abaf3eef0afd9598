package layout

import (
	"fmt"

	"github.com/dshills/richinput/internal/token"
)

// Point is a location in host units: pixels for graphical hosts, cells for
// terminals.
type Point struct {
	X float64
	Y float64
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Oracle answers coordinate questions about the host's current rendering
// of tokens.
type Oracle interface {
	// HitTest returns the buffer offset under pt.
	HitTest(pt Point, tokens []token.Token) (index int, ok bool)

	// Measure returns the caret location for index.
	Measure(index int, tokens []token.Token) (pt Point, ok bool)
}
