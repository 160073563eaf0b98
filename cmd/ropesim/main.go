package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ropesim/internal/inputs"
	"ropesim/internal/protocol"
	"ropesim/internal/sim/runner"
	"ropesim/internal/sim/tuning"
	"ropesim/internal/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ropesim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		part2      = fs.Bool("part2", false, "simulate the ten-segment rope instead of the two-segment one")
		all        = fs.Bool("all", false, "simulate every configured rope concurrently")
		ropeName   = fs.String("rope", "", "rope name from the config (overrides -part2)")
		configPath = fs.String("config", "", "path to ropes.yaml (default: built-in part1/part2 ropes)")
		tracePath  = fs.String("trace", "", "write a step trace to this .jsonl.zst file")
		verbose    = fs.Bool("v", false, "log progress to stderr")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ropesim [flags] <input|->")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	input := fs.Arg(0)

	logOut := io.Discard
	if *verbose {
		logOut = stderr
	}
	logger := log.New(logOut, "[ropesim] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := tuning.Load(*configPath)
	if err != nil {
		return fail(stderr, "load config", err)
	}
	if strings.TrimSpace(*configPath) == "" {
		logger.Printf("config: built-in defaults (%d ropes)", len(cfg.Ropes))
	} else {
		logger.Printf("config: %s (%d ropes)", *configPath, len(cfg.Ropes))
	}

	if *all {
		if *tracePath != "" {
			fmt.Fprintln(stderr, "-trace cannot be combined with -all")
			return 2
		}
		return runAll(ctx, cfg, input, stdout, stderr, logger)
	}

	spec, err := pickRope(cfg, *ropeName, *part2)
	if err != nil {
		return fail(stderr, "select rope", err)
	}
	logger.Printf("rope %s: length=%d policy=%s", spec.Name, spec.Length, spec.Policy)

	src, err := inputs.Open(input)
	if err != nil {
		return fail(stderr, "open input", err)
	}
	defer src.Close()

	opts := runner.Options{Every: cfg.TraceEvery}
	var tw *trace.Writer
	if *tracePath != "" {
		tw, err = trace.Create(*tracePath, trace.Header{
			Name:   spec.Name,
			Length: spec.Length,
			Policy: spec.Policy,
			Every:  cfg.TraceEvery,
		})
		if err != nil {
			return fail(stderr, "create trace", err)
		}
		opts.Observer = tw
	}

	start := time.Now()
	res, err := runner.Run(ctx, spec, src, opts)
	if err != nil {
		if tw != nil {
			_ = tw.Close()
		}
		return fail(stderr, "simulate", err)
	}
	if tw != nil {
		if err := tw.WriteResult(res); err != nil {
			_ = tw.Close()
			return fail(stderr, "write trace", err)
		}
		if err := tw.Close(); err != nil {
			return fail(stderr, "close trace", err)
		}
		logger.Printf("trace written to %s", *tracePath)
	}
	logger.Printf("records=%d steps=%d tail=(%d,%d) digest=%s elapsed=%s",
		res.Records, res.Steps, res.Tail.X, res.Tail.Y, res.Digest, time.Since(start))

	fmt.Fprintln(stdout, res.Visited)
	return 0
}

func runAll(ctx context.Context, cfg tuning.Config, input string, stdout, stderr io.Writer, logger *log.Logger) int {
	raw, err := inputs.ReadAll(input)
	if err != nil {
		return fail(stderr, "read input", err)
	}
	start := time.Now()
	results, err := runner.RunAll(ctx, cfg, raw)
	if err != nil {
		return fail(stderr, "simulate", err)
	}
	for _, res := range results {
		logger.Printf("rope %s: length=%d policy=%s steps=%d digest=%s", res.Name, res.Length, res.Policy, res.Steps, res.Digest)
		fmt.Fprintf(stdout, "%s %d\n", res.Name, res.Visited)
	}
	logger.Printf("elapsed=%s", time.Since(start))
	return 0
}

func pickRope(cfg tuning.Config, name string, part2 bool) (tuning.RopeSpec, error) {
	if name = strings.TrimSpace(name); name != "" {
		return cfg.Lookup(name)
	}
	return cfg.ForPart(part2)
}

func fail(stderr io.Writer, what string, err error) int {
	fmt.Fprintf(stderr, "%s: %v\n", what, err)
	var coded protocol.Coded
	if errors.As(err, &coded) && protocol.IsKnownCode(coded.Code()) {
		return protocol.ExitCode(coded.Code())
	}
	return 1
}
