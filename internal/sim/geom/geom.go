// Package geom holds the integer grid primitives shared by the rope engine.
package geom

// Pos is a cell on the unbounded grid. Y grows upward.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is where every segment starts.
var Origin = Pos{}

func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Pos) Sub(o Pos) Pos { return Pos{X: p.X - o.X, Y: p.Y - o.Y} }

// Chebyshev returns max(|dx|, |dy|).
func Chebyshev(a, b Pos) int {
	return max(AbsInt(a.X-b.X), AbsInt(a.Y-b.Y))
}

// Manhattan returns |dx| + |dy|.
func Manhattan(a, b Pos) int {
	return AbsInt(a.X-b.X) + AbsInt(a.Y-b.Y)
}

// Touching reports whether a and b are the same cell or neighbours,
// diagonals included.
func Touching(a, b Pos) bool {
	return Chebyshev(a, b) <= 1
}

// Less orders positions by X, then Y.
func Less(a, b Pos) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
