package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

var ErrNoHeader = errors.New("trace: missing header")

// Reader decodes a trace produced by Writer.
type Reader struct {
	f   *os.File
	dec *zstd.Decoder
	sc  *bufio.Scanner

	line    int
	header  Header
	summary *Summary
	err     error
}

// Open opens a .jsonl.zst trace and reads its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rd, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rd.f = f
	return rd, nil
}

// NewReader reads a trace from a zstd stream.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	rd := &Reader{dec: dec, sc: sc}
	if !sc.Scan() {
		dec.Close()
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoHeader
	}
	rd.line++
	if err := json.Unmarshal(sc.Bytes(), &rd.header); err != nil {
		dec.Close()
		return nil, fmt.Errorf("line 1: %w", err)
	}
	if rd.header.Kind != KindHeader {
		dec.Close()
		return nil, ErrNoHeader
	}
	if rd.header.Version != Version {
		dec.Close()
		return nil, fmt.Errorf("trace: unsupported version %d", rd.header.Version)
	}
	return rd, nil
}

func (r *Reader) Header() Header { return r.header }

// Summary is the recorded run result, available once Next has returned false.
// It is nil for a truncated trace.
func (r *Reader) Summary() *Summary { return r.summary }

// Next returns the next step entry.
func (r *Reader) Next() (Entry, bool) {
	if r.err != nil || r.summary != nil {
		return Entry{}, false
	}
	for r.sc.Scan() {
		r.line++
		var probe struct {
			Kind string `json:"kind"`
		}
		b := r.sc.Bytes()
		if err := json.Unmarshal(b, &probe); err != nil {
			r.err = fmt.Errorf("line %d: %w", r.line, err)
			return Entry{}, false
		}
		switch probe.Kind {
		case KindStep:
			var e Entry
			if err := json.Unmarshal(b, &e); err != nil {
				r.err = fmt.Errorf("line %d: %w", r.line, err)
				return Entry{}, false
			}
			if len(e.Segments) == 0 {
				r.err = fmt.Errorf("line %d: step %d has no segments", r.line, e.Step)
				return Entry{}, false
			}
			return e, true
		case KindResult:
			var s Summary
			if err := json.Unmarshal(b, &s); err != nil {
				r.err = fmt.Errorf("line %d: %w", r.line, err)
				return Entry{}, false
			}
			r.summary = &s
			return Entry{}, false
		default:
			r.err = fmt.Errorf("line %d: unknown kind %q", r.line, probe.Kind)
			return Entry{}, false
		}
	}
	r.err = r.sc.Err()
	return Entry{}, false
}

func (r *Reader) Err() error { return r.err }

func (r *Reader) Close() error {
	r.dec.Close()
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}
