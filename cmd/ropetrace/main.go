package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"ropesim/internal/sim/directive"
	"ropesim/internal/trace"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(_ context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ropetrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		tracePath  = fs.String("trace", "", "path to a .jsonl.zst trace written by ropesim -trace")
		directives = fs.Bool("directives", false, "print the head's moves as <letter> <count> lines (full-rate traces only)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *tracePath == "" {
		fmt.Fprintln(stderr, "missing -trace")
		return 2
	}

	rd, err := trace.Open(*tracePath)
	if err != nil {
		fmt.Fprintln(stderr, "open trace:", err)
		return 1
	}
	defer rd.Close()

	h := rd.Header()
	if !*directives {
		fmt.Fprintf(stdout, "trace v%d rope=%s length=%d policy=%s every=%d\n", h.Version, h.Name, h.Length, h.Policy, h.Every)
	}

	rep, err := trace.Verify(rd)
	if err != nil {
		fmt.Fprintln(stderr, "verify:", err)
		return 1
	}

	if *directives {
		if !rep.FullRate {
			fmt.Fprintf(stderr, "trace records every %d steps; moves cannot be recovered\n", h.Every)
			return 1
		}
		for _, r := range directive.Collapse(rep.Moves) {
			fmt.Fprintln(stdout, r.String())
		}
		return 0
	}

	if rep.FullRate {
		fmt.Fprintf(stdout, "verify ok: entries=%d steps=%d visited=%d recounted=%d\n", rep.Entries, rep.Steps, rep.Visited, rep.Recounted)
	} else {
		fmt.Fprintf(stdout, "verify ok: entries=%d steps=%d visited=%d (sampled, not recounted)\n", rep.Entries, rep.Steps, rep.Visited)
	}
	return 0
}
