// Package visited records the distinct cells a segment has occupied.
package visited

import (
	"sort"

	"ropesim/internal/sim/geom"
)

// Tracker is an append-only set of positions.
type Tracker struct {
	seen map[geom.Pos]struct{}
}

// New returns a tracker that already counts start as visited.
func New(start geom.Pos) *Tracker {
	t := &Tracker{seen: make(map[geom.Pos]struct{}, 1024)}
	t.seen[start] = struct{}{}
	return t
}

// Record adds p and reports whether it was new.
func (t *Tracker) Record(p geom.Pos) bool {
	if _, ok := t.seen[p]; ok {
		return false
	}
	t.seen[p] = struct{}{}
	return true
}

func (t *Tracker) Count() int { return len(t.seen) }

func (t *Tracker) Has(p geom.Pos) bool {
	_, ok := t.seen[p]
	return ok
}

// Positions returns the visited cells sorted by X, then Y.
func (t *Tracker) Positions() []geom.Pos {
	out := make([]geom.Pos, 0, len(t.seen))
	for p := range t.seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return geom.Less(out[i], out[j]) })
	return out
}
