// Package rope is the chain engine: a fixed number of segments where the head
// takes unit moves and every other segment follows its predecessor.
package rope

import (
	"fmt"

	"ropesim/internal/sim/directive"
	"ropesim/internal/sim/geom"
)

type Rope struct {
	segs   []geom.Pos
	prev   []geom.Pos
	policy Policy
	steps  uint64
}

// New builds a rope of n segments at the origin.
func New(n int, p Policy) (*Rope, error) {
	if n < 2 {
		return nil, &ConfigError{Param: "length", Value: n, Err: ErrTooShort}
	}
	if p == nil {
		return nil, &ConfigError{Param: "policy", Value: nil, Err: ErrNoPolicy}
	}
	return &Rope{
		segs:   make([]geom.Pos, n),
		prev:   make([]geom.Pos, n),
		policy: p,
	}, nil
}

// Step moves the head by d, updates segments 1..n-1 in order and returns the
// tail's new position.
func (r *Rope) Step(d directive.Directive) geom.Pos {
	copy(r.prev, r.segs)

	r.segs[0] = r.segs[0].Add(d.Vec())
	for i := 1; i < len(r.segs); i++ {
		r.segs[i] = r.policy.Follow(r.segs[i-1], r.prev[i-1], r.segs[i])
	}
	r.steps++
	return r.segs[len(r.segs)-1]
}

func (r *Rope) Len() int       { return len(r.segs) }
func (r *Rope) Head() geom.Pos { return r.segs[0] }
func (r *Rope) Tail() geom.Pos { return r.segs[len(r.segs)-1] }
func (r *Rope) Steps() uint64  { return r.steps }
func (r *Rope) Policy() Policy { return r.policy }
func (r *Rope) Digest() string { return Digest(r.segs) }
func (r *Rope) Check() error   { return CheckChain(r.segs) }

// Segments returns a copy of the chain, head first.
func (r *Rope) Segments() []geom.Pos {
	out := make([]geom.Pos, len(r.segs))
	copy(out, r.segs)
	return out
}

// CheckChain returns an error naming the first pair of adjacent segments that
// are not touching.
func CheckChain(segs []geom.Pos) error {
	for i := 1; i < len(segs); i++ {
		if !geom.Touching(segs[i-1], segs[i]) {
			return fmt.Errorf("segments %d and %d apart: %+v %+v", i-1, i, segs[i-1], segs[i])
		}
	}
	return nil
}
