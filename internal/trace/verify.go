package trace

import (
	"errors"
	"fmt"

	"ropesim/internal/sim/directive"
	"ropesim/internal/sim/geom"
	"ropesim/internal/sim/rope"
	"ropesim/internal/sim/visited"
)

var ErrTruncated = errors.New("trace: missing result line")

// Report is what Verify could establish about a trace.
type Report struct {
	Header  Header
	Entries int
	Steps   uint64
	Visited int

	// FullRate is true when every step was recorded; only then are Recounted
	// and Moves filled in.
	FullRate  bool
	Recounted int
	Moves     []directive.Directive
}

// Verify reads every entry and checks that step numbers increase, the chain
// length matches the header, adjacent segments touch, and visited counts never
// drop. For full-rate traces it also recounts the distinct tail cells and
// recovers the head's moves.
func Verify(rd *Reader) (Report, error) {
	h := rd.Header()
	rep := Report{Header: h, FullRate: h.Every == 1}

	tr := visited.New(geom.Origin)
	prevHead := geom.Origin
	var lastStep uint64
	lastVisited := 1

	for {
		e, ok := rd.Next()
		if !ok {
			break
		}
		if rep.Entries > 0 && e.Step <= lastStep {
			return rep, fmt.Errorf("step %d after step %d", e.Step, lastStep)
		}
		if len(e.Segments) != h.Length {
			return rep, fmt.Errorf("step %d: %d segments, header says %d", e.Step, len(e.Segments), h.Length)
		}
		segs := e.Positions()
		if err := rope.CheckChain(segs); err != nil {
			return rep, fmt.Errorf("step %d: %w", e.Step, err)
		}
		if got := rope.Digest(segs); got != e.Digest {
			return rep, fmt.Errorf("step %d: digest mismatch: got=%s want=%s", e.Step, got, e.Digest)
		}
		if e.Visited < lastVisited {
			return rep, fmt.Errorf("step %d: visited dropped from %d to %d", e.Step, lastVisited, e.Visited)
		}

		if rep.FullRate && e.Step > 0 {
			if e.Step != lastStep+1 {
				return rep, fmt.Errorf("full-rate trace skips from step %d to %d", lastStep, e.Step)
			}
			d, ok := e.Directive()
			if !ok || e.Head() != prevHead.Add(d.Vec()) {
				return rep, fmt.Errorf("step %d: head %+v is not one %q move from %+v", e.Step, e.Head(), e.Move, prevHead)
			}
			rep.Moves = append(rep.Moves, d)
			prevHead = e.Head()
			tr.Record(e.Tail())
			if tr.Count() != e.Visited {
				return rep, fmt.Errorf("step %d: recorded visited=%d, recount=%d", e.Step, e.Visited, tr.Count())
			}
		}

		rep.Entries++
		lastStep = e.Step
		lastVisited = e.Visited
		rep.Steps = e.Step
		rep.Visited = e.Visited
	}
	if err := rd.Err(); err != nil {
		return rep, err
	}
	if rep.FullRate {
		rep.Recounted = tr.Count()
	}

	sum := rd.Summary()
	if sum == nil {
		return rep, ErrTruncated
	}
	if sum.Result.Steps != rep.Steps || sum.Result.Visited != rep.Visited {
		return rep, fmt.Errorf("result line says steps=%d visited=%d, last entry has steps=%d visited=%d",
			sum.Result.Steps, sum.Result.Visited, rep.Steps, rep.Visited)
	}
	return rep, nil
}
