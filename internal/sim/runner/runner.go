// Package runner drives a directive stream through a rope and its tail
// tracker, one unit move at a time.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"ropesim/internal/sim/directive"
	"ropesim/internal/sim/geom"
	"ropesim/internal/sim/rope"
	"ropesim/internal/sim/tuning"
	"ropesim/internal/sim/visited"
)

// cancelCheckEvery bounds how many moves run between context checks.
const cancelCheckEvery = 4096

// Frame is the state after one step, handed to an Observer. Segments is a
// copy owned by the observer.
type Frame struct {
	Step     uint64
	Move     directive.Directive
	Segments []geom.Pos
	Visited  int
	Digest   string
}

type Observer interface {
	Observe(f Frame) error
}

type Options struct {
	// Observer, if set, sees every Every-th step and the final state.
	Observer Observer
	Every    int
}

type Result struct {
	Name    string   `json:"name"`
	Length  int      `json:"length"`
	Policy  string   `json:"policy"`
	Records int      `json:"records"`
	Steps   uint64   `json:"steps"`
	Visited int      `json:"visited"`
	Tail    geom.Pos `json:"tail"`
	Digest  string   `json:"digest"`
}

// Run builds a fresh rope and tracker for spec and feeds it src.
func Run(ctx context.Context, spec tuning.RopeSpec, src io.Reader, opts Options) (Result, error) {
	r, err := spec.Build()
	if err != nil {
		return Result{}, err
	}
	tr := visited.New(r.Tail())
	s := directive.NewStream(src)

	res, err := Drive(ctx, r, tr, s, opts)
	res.Name = spec.Name
	return res, err
}

// Drive applies every move of s to r, reporting the tail to tr after each
// step. It stops at the first parse error or when ctx is done.
func Drive(ctx context.Context, r *rope.Rope, tr *visited.Tracker, s *directive.Stream, opts Options) (Result, error) {
	every := uint64(1)
	if opts.Every > 1 {
		every = uint64(opts.Every)
	}
	var lastObserved uint64
	observed := false
	var last directive.Directive

	emit := func(step uint64, d directive.Directive) error {
		observed = true
		lastObserved = step
		return opts.Observer.Observe(Frame{
			Step:     step,
			Move:     d,
			Segments: r.Segments(),
			Visited:  tr.Count(),
			Digest:   r.Digest(),
		})
	}

	for {
		if r.Steps()%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return result(r, tr, s), fmt.Errorf("after %d steps: %w", r.Steps(), err)
			}
		}
		d, ok := s.Next()
		if !ok {
			break
		}
		tr.Record(r.Step(d))
		last = d

		if opts.Observer != nil && r.Steps()%every == 0 {
			if err := emit(r.Steps(), d); err != nil {
				return result(r, tr, s), fmt.Errorf("observe step %d: %w", r.Steps(), err)
			}
		}
	}
	if err := s.Err(); err != nil {
		return result(r, tr, s), err
	}
	if opts.Observer != nil && (!observed || lastObserved != r.Steps()) {
		if err := emit(r.Steps(), last); err != nil {
			return result(r, tr, s), fmt.Errorf("observe final step: %w", err)
		}
	}
	return result(r, tr, s), nil
}

func result(r *rope.Rope, tr *visited.Tracker, s *directive.Stream) Result {
	return Result{
		Length:  r.Len(),
		Policy:  r.Policy().Name(),
		Records: s.Records(),
		Steps:   r.Steps(),
		Visited: tr.Count(),
		Tail:    r.Tail(),
		Digest:  r.Digest(),
	}
}

// RunAll runs every configured rope over the same input concurrently. Each
// rope gets its own reader over raw; results keep configuration order.
func RunAll(ctx context.Context, cfg tuning.Config, raw []byte) ([]Result, error) {
	out := make([]Result, len(cfg.Ropes))
	errs := make([]error, len(cfg.Ropes))

	var wg sync.WaitGroup
	for i, spec := range cfg.Ropes {
		wg.Add(1)
		go func(i int, spec tuning.RopeSpec) {
			defer wg.Done()
			res, err := Run(ctx, spec, bytes.NewReader(raw), Options{})
			out[i] = res
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", spec.Name, err)
			}
		}(i, spec)
	}
	wg.Wait()
	return out, errors.Join(errs...)
}
