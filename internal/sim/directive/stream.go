package directive

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Stream expands an input lazily, one unit move per Next call, in file order.
// Only the current line is held in memory.
type Stream struct {
	sc   *bufio.Scanner
	line int

	cur    Record
	remain int

	records int
	moves   uint64
	err     error
}

func NewStream(r io.Reader) *Stream {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4*1024), 1024*1024)
	return &Stream{sc: sc}
}

// Next returns the next unit move. It returns false at the end of input or on
// the first error; check Err afterwards.
func (s *Stream) Next() (Directive, bool) {
	for s.remain == 0 {
		if s.err != nil {
			return Directive{}, false
		}
		if !s.sc.Scan() {
			if err := s.sc.Err(); err != nil {
				s.err = err
			}
			return Directive{}, false
		}
		s.line++
		text := s.sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := ParseLine(text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = s.line
			}
			s.err = err
			return Directive{}, false
		}
		s.records++
		s.cur = rec
		s.remain = rec.Count
	}
	s.remain--
	s.moves++
	return s.cur.Dir, true
}

func (s *Stream) Err() error { return s.err }

// Line is the 1-based number of the line most recently read.
func (s *Stream) Line() int { return s.line }

// Records counts non-blank lines accepted so far.
func (s *Stream) Records() int { return s.records }

// Moves counts unit moves handed out so far.
func (s *Stream) Moves() uint64 { return s.moves }

// Expand is a convenience for tests and small inputs: it drains text into a
// slice.
func Expand(text string) ([]Directive, error) {
	s := NewStream(strings.NewReader(text))
	var out []Directive
	for {
		d, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, d)
	}
	return out, s.Err()
}
