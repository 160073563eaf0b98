package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ropesim/internal/protocol"
)

var (
	ErrBadLetter = errors.New("unknown direction")
	ErrBadCount  = errors.New("count must be a non-negative integer")
	ErrBadShape  = errors.New(`want "<U|D|L|R> <count>"`)
)

// ParseError reports a malformed input line. Line is 1-based; 0 means the
// text did not come from a stream.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Code() string  { return protocol.ErrParse }

// Record is one input line before expansion.
type Record struct {
	Dir   Directive
	Count int
}

func (r Record) String() string {
	return fmt.Sprintf("%s %d", r.Dir, r.Count)
}

// ParseLine parses a single "<letter> <count>" line.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Record{}, &ParseError{Text: line, Err: ErrBadShape}
	}
	if len(fields[0]) != 1 {
		return Record{}, &ParseError{Text: line, Err: fmt.Errorf("%w %q", ErrBadLetter, fields[0])}
	}
	dir, ok := FromLetter(fields[0][0])
	if !ok {
		return Record{}, &ParseError{Text: line, Err: fmt.Errorf("%w %q", ErrBadLetter, fields[0])}
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return Record{}, &ParseError{Text: line, Err: fmt.Errorf("%w: %q", ErrBadCount, fields[1])}
	}
	return Record{Dir: dir, Count: n}, nil
}
