// Package trace records a run step by step as compressed JSON lines and reads
// such a recording back for verification.
package trace

import (
	"ropesim/internal/sim/directive"
	"ropesim/internal/sim/geom"
	"ropesim/internal/sim/runner"
)

const Version = 1

const (
	KindHeader = "header"
	KindStep   = "step"
	KindResult = "result"
)

type Header struct {
	Kind    string `json:"kind"`
	Version int    `json:"version"`
	Name    string `json:"name"`
	Length  int    `json:"length"`
	Policy  string `json:"policy"`
	Every   int    `json:"every"`
}

type Entry struct {
	Kind     string   `json:"kind"`
	Step     uint64   `json:"step"`
	Move     string   `json:"move,omitempty"`
	Segments [][2]int `json:"segments"`
	Visited  int      `json:"visited"`
	Digest   string   `json:"digest"`
}

type Summary struct {
	Kind   string        `json:"kind"`
	Result runner.Result `json:"result"`
}

func EntryFromFrame(f runner.Frame) Entry {
	segs := make([][2]int, len(f.Segments))
	for i, p := range f.Segments {
		segs[i] = [2]int{p.X, p.Y}
	}
	e := Entry{
		Kind:     KindStep,
		Step:     f.Step,
		Segments: segs,
		Visited:  f.Visited,
		Digest:   f.Digest,
	}
	if l := f.Move.Letter(); l != 0 {
		e.Move = string(l)
	}
	return e
}

// Positions converts the recorded chain back to grid positions.
func (e Entry) Positions() []geom.Pos {
	out := make([]geom.Pos, len(e.Segments))
	for i, s := range e.Segments {
		out[i] = geom.Pos{X: s[0], Y: s[1]}
	}
	return out
}

func (e Entry) Head() geom.Pos { return geom.Pos{X: e.Segments[0][0], Y: e.Segments[0][1]} }

func (e Entry) Tail() geom.Pos {
	s := e.Segments[len(e.Segments)-1]
	return geom.Pos{X: s[0], Y: s[1]}
}

// Directive returns the recorded head move, if any.
func (e Entry) Directive() (directive.Directive, bool) {
	if len(e.Move) != 1 {
		return directive.Directive{}, false
	}
	return directive.FromLetter(e.Move[0])
}
