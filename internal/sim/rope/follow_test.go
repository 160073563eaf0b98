package rope

import (
	"errors"
	"testing"

	"ropesim/internal/sim/geom"
)

func TestCompass_TouchingStays(t *testing.T) {
	f := geom.Pos{X: 3, Y: 3}
	for _, l := range []geom.Pos{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 2, Y: 4}, {X: 4, Y: 2}} {
		if got := (Compass{}).Follow(l, geom.Origin, f); got != f {
			t.Fatalf("leader %+v: follower moved to %+v", l, got)
		}
	}
}

func TestCompass_StraightLinePrefersDirect(t *testing.T) {
	got := (Compass{}).Follow(geom.Pos{X: 2, Y: 0}, geom.Origin, geom.Origin)
	if got != (geom.Pos{X: 1, Y: 0}) {
		t.Fatalf("got %+v want (1,0)", got)
	}
	got = (Compass{}).Follow(geom.Pos{X: 0, Y: -2}, geom.Origin, geom.Origin)
	if got != (geom.Pos{X: 0, Y: -1}) {
		t.Fatalf("got %+v want (0,-1)", got)
	}
}

func TestCompass_KnightOffsetGoesDiagonal(t *testing.T) {
	got := (Compass{}).Follow(geom.Pos{X: 2, Y: 1}, geom.Origin, geom.Origin)
	if got != (geom.Pos{X: 1, Y: 1}) {
		t.Fatalf("got %+v want (1,1)", got)
	}
	got = (Compass{}).Follow(geom.Pos{X: -1, Y: -2}, geom.Origin, geom.Origin)
	if got != (geom.Pos{X: -1, Y: -1}) {
		t.Fatalf("got %+v want (-1,-1)", got)
	}
}

func TestCompass_DiagonalGap(t *testing.T) {
	got := (Compass{}).Follow(geom.Pos{X: -2, Y: 2}, geom.Origin, geom.Origin)
	if got != (geom.Pos{X: -1, Y: 1}) {
		t.Fatalf("got %+v want (-1,1)", got)
	}
}

func TestCompass_OffsetOrder(t *testing.T) {
	want := [8]geom.Pos{
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: -1},
		{X: 0, Y: -1}, {X: -1, Y: -1}, {X: -1, Y: 0}, {X: -1, Y: 1},
	}
	if compassOffsets != want {
		t.Fatalf("offset order changed: %v", compassOffsets)
	}
}

func TestCompass_ExhaustiveGapOfTwo(t *testing.T) {
	// Every leader exactly two cells away ends up touching after one move,
	// and the move is the sign vector of the gap.
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			leader := geom.Pos{X: dx, Y: dy}
			if geom.Chebyshev(leader, geom.Origin) != 2 {
				continue
			}
			got := (Compass{}).Follow(leader, geom.Origin, geom.Origin)
			if !geom.Touching(leader, got) {
				t.Fatalf("leader %+v: follower %+v not touching", leader, got)
			}
			want := geom.Pos{X: sign(dx), Y: sign(dy)}
			if got != want {
				t.Fatalf("leader %+v: got %+v want %+v", leader, got, want)
			}
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func TestLeash_JumpsToPreviousLeader(t *testing.T) {
	prev := geom.Pos{X: 1, Y: 0}
	leader := geom.Pos{X: 2, Y: 0}
	if got := (Leash{}).Follow(leader, prev, geom.Origin); got != prev {
		t.Fatalf("got %+v want %+v", got, prev)
	}
}

func TestLeash_DiffersFromCompassOnDiagonalLeader(t *testing.T) {
	// Leader stepped diagonally from (1,0) to (2,1); follower at (0,0).
	prev := geom.Pos{X: 1, Y: 0}
	leader := geom.Pos{X: 2, Y: 1}
	leash := (Leash{}).Follow(leader, prev, geom.Origin)
	compass := (Compass{}).Follow(leader, prev, geom.Origin)
	if leash != prev {
		t.Fatalf("leash: got %+v want %+v", leash, prev)
	}
	if compass != (geom.Pos{X: 1, Y: 1}) {
		t.Fatalf("compass: got %+v want (1,1)", compass)
	}
}

func TestLeash_TouchingStays(t *testing.T) {
	f := geom.Pos{X: 5, Y: 5}
	if got := (Leash{}).Follow(geom.Pos{X: 6, Y: 6}, geom.Pos{X: 9, Y: 9}, f); got != f {
		t.Fatalf("follower moved to %+v", got)
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName(" Compass ")
	if err != nil {
		t.Fatalf("PolicyByName: %v", err)
	}
	if p.Name() != PolicyCompass {
		t.Fatalf("Name()=%s", p.Name())
	}
	if _, err := PolicyByName("bungee"); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
	names := PolicyNames()
	if len(names) != 2 || names[0] != PolicyCompass || names[1] != PolicyLeash {
		t.Fatalf("PolicyNames()=%v", names)
	}
}
