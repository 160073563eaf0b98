// Package directive turns "<letter> <count>" lines into unit head moves.
package directive

import "ropesim/internal/sim/geom"

// Directive is a unit vector applied to the rope head.
type Directive geom.Pos

var (
	Up    = Directive{X: 0, Y: 1}
	Right = Directive{X: 1, Y: 0}
	Down  = Directive{X: 0, Y: -1}
	Left  = Directive{X: -1, Y: 0}
)

func (d Directive) Vec() geom.Pos { return geom.Pos(d) }

// Letter returns the input letter for d, or 0 if d is not a unit move.
func (d Directive) Letter() byte {
	switch d {
	case Up:
		return 'U'
	case Right:
		return 'R'
	case Down:
		return 'D'
	case Left:
		return 'L'
	}
	return 0
}

func (d Directive) String() string {
	if l := d.Letter(); l != 0 {
		return string(l)
	}
	return "?"
}

// FromLetter maps U/R/D/L to its unit vector.
func FromLetter(c byte) (Directive, bool) {
	switch c {
	case 'U':
		return Up, true
	case 'R':
		return Right, true
	case 'D':
		return Down, true
	case 'L':
		return Left, true
	}
	return Directive{}, false
}
