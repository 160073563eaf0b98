package directive

import (
	"errors"
	"testing"

	"ropesim/internal/protocol"
)

func TestParseLine(t *testing.T) {
	rec, err := ParseLine("R 4")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if rec.Dir != Right || rec.Count != 4 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.String() != "R 4" {
		t.Fatalf("String()=%q", rec.String())
	}

	rec, err = ParseLine("  U   0 ")
	if err != nil {
		t.Fatalf("ParseLine with padding: %v", err)
	}
	if rec.Dir != Up || rec.Count != 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestParseLine_Errors(t *testing.T) {
	cases := []struct {
		line string
		want error
	}{
		{"X 3", ErrBadLetter},
		{"r 3", ErrBadLetter},
		{"RR 3", ErrBadLetter},
		{"R three", ErrBadCount},
		{"R -1", ErrBadCount},
		{"R 1.5", ErrBadCount},
		{"R", ErrBadShape},
		{"R 1 2", ErrBadShape},
		{"", ErrBadShape},
	}
	for _, c := range cases {
		_, err := ParseLine(c.line)
		if err == nil {
			t.Fatalf("%q: expected error", c.line)
		}
		if !errors.Is(err, c.want) {
			t.Fatalf("%q: got %v want %v", c.line, err, c.want)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected *ParseError, got %T", c.line, err)
		}
		if pe.Code() != protocol.ErrParse {
			t.Fatalf("%q: code=%s", c.line, pe.Code())
		}
	}
}

func TestDirectiveLetters(t *testing.T) {
	for _, c := range []byte("URDL") {
		d, ok := FromLetter(c)
		if !ok {
			t.Fatalf("FromLetter(%c) failed", c)
		}
		if d.Letter() != c {
			t.Fatalf("Letter round trip: %c -> %c", c, d.Letter())
		}
		if v := d.Vec(); v.X*v.X+v.Y*v.Y != 1 {
			t.Fatalf("%c is not a unit vector: %+v", c, v)
		}
	}
	if _, ok := FromLetter('Q'); ok {
		t.Fatalf("FromLetter(Q) should fail")
	}
	if (Directive{X: 1, Y: 1}).Letter() != 0 {
		t.Fatalf("diagonal has no letter")
	}
}
