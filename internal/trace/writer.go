package trace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"ropesim/internal/sim/runner"
)

// JSONLZstdWriter writes one JSON value per line into a zstd-compressed file.
type JSONLZstdWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewJSONLZstdWriter(path string) (*JSONLZstdWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &JSONLZstdWriter{
		f:   f,
		enc: enc,
		w:   bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err1 := w.w.Flush()
	err2 := w.enc.Close()
	err3 := w.f.Close()
	w.f, w.enc, w.w = nil, nil, nil
	for _, err := range []error{err1, err2, err3} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Writer records a single run: a header line, step lines, and a result line.
type Writer struct{ w *JSONLZstdWriter }

// Create opens path and writes the header.
func Create(path string, h Header) (*Writer, error) {
	w, err := NewJSONLZstdWriter(path)
	if err != nil {
		return nil, err
	}
	h.Kind = KindHeader
	h.Version = Version
	if err := w.Write(h); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Writer{w: w}, nil
}

// Observe implements runner.Observer.
func (t *Writer) Observe(f runner.Frame) error {
	return t.w.Write(EntryFromFrame(f))
}

func (t *Writer) WriteResult(res runner.Result) error {
	return t.w.Write(Summary{Kind: KindResult, Result: res})
}

func (t *Writer) Close() error { return t.w.Close() }
