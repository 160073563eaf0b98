package rope

import (
	"sort"
	"strings"

	"ropesim/internal/sim/geom"
)

// Policy decides where a segment goes once its leader has moved.
//
// leader is the predecessor's position after this step, prevLeader its
// position before this step, follower the segment's current position.
type Policy interface {
	Name() string
	Follow(leader, prevLeader, follower geom.Pos) geom.Pos
}

const (
	PolicyCompass = "compass"
	PolicyLeash   = "leash"
)

// compassOffsets is N, NE, E, SE, S, SW, W, NW. Order breaks ties.
var compassOffsets = [8]geom.Pos{
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
}

// Compass moves a detached follower one cell toward its leader, choosing the
// compass neighbour with the smallest Manhattan distance to the leader.
type Compass struct{}

func (Compass) Name() string { return PolicyCompass }

func (Compass) Follow(leader, _, follower geom.Pos) geom.Pos {
	if geom.Touching(leader, follower) {
		return follower
	}
	best := follower.Add(compassOffsets[0])
	bestDist := geom.Manhattan(best, leader)
	for _, off := range compassOffsets[1:] {
		c := follower.Add(off)
		// Strict less keeps the earliest offset on ties.
		if d := geom.Manhattan(c, leader); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Leash drops a detached follower onto the cell its leader just left.
type Leash struct{}

func (Leash) Name() string { return PolicyLeash }

func (Leash) Follow(leader, prevLeader, follower geom.Pos) geom.Pos {
	if geom.Touching(leader, follower) {
		return follower
	}
	return prevLeader
}

var policies = map[string]Policy{
	PolicyCompass: Compass{},
	PolicyLeash:   Leash{},
}

// PolicyByName resolves a configured policy name (case-insensitive).
func PolicyByName(name string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	p, ok := policies[key]
	if !ok {
		return nil, &ConfigError{Param: "policy", Value: name, Err: ErrUnknownPolicy}
	}
	return p, nil
}

// PolicyNames lists the registered policies in sorted order.
func PolicyNames() []string {
	out := make([]string, 0, len(policies))
	for name := range policies {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
