package trace_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"ropesim/internal/sim/runner"
	"ropesim/internal/sim/tuning"
	"ropesim/internal/trace"
)

func TestSchemas_ValidateTraceLines(t *testing.T) {
	s, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "trace.schema.json"))
	if err != nil {
		t.Fatalf("compile trace.schema.json: %v", err)
	}

	path := filepath.Join(t.TempDir(), "b.jsonl.zst")
	spec, _ := tuning.Defaults().ForPart(true)
	w, err := trace.Create(path, trace.Header{Name: spec.Name, Length: spec.Length, Policy: spec.Policy, Every: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := runner.Run(context.Background(), spec, strings.NewReader("R 5\nU 8\nL 8\nD 3\n"), runner.Options{Observer: w, Every: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := w.WriteResult(res); err != nil {
		t.Fatalf("result: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	lines := 0
	for sc.Scan() {
		var v any
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("line %d: %v", lines+1, err)
		}
		if err := s.Validate(v); err != nil {
			t.Fatalf("line %d: validate: %v", lines+1, err)
		}
		lines++
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	// header + steps 3..24 every 3 (8 entries) + result
	if lines != 10 {
		t.Fatalf("lines=%d want 10", lines)
	}

	var bad any
	_ = json.Unmarshal([]byte(`{"kind":"step","step":1,"move":"X","segments":[[0,0],[0,0]],"visited":1,"digest":"00"}`), &bad)
	if err := s.Validate(bad); err == nil {
		t.Fatalf("expected bad step to be rejected")
	}
}
