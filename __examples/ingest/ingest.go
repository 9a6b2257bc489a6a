package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/ingest"
)

const exampleTimeout = 30 * time.Second

// A `go test -bench=. -count=3` result file, inlined for the example.
const results = `goos: linux
goarch: amd64
pkg: example.com/codec
BenchmarkCodec/json 	  200000	      5210 ns/op
BenchmarkCodec/json 	  205000	      5180 ns/op
BenchmarkCodec/json 	  198000	      5243 ns/op
BenchmarkCodec/msgpack 	  500000	      2105 ns/op
BenchmarkCodec/msgpack 	  480000	      2141 ns/op
BenchmarkCodec/msgpack 	  510000	      2096 ns/op
PASS
ok  	example.com/codec	8.120s
`

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), exampleTimeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "benchplot-ingest")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "bench.txt")

	err = os.WriteFile(file, []byte(results), 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	plotter, err := benchplot.NewScriptWithDefaults(ctx, ".benchplot-example")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	// Stop the plotter when the program exits
	defer plotter.Stop(ctx)

	log.Println("ingesting the benchmark results")

	entries, err := ingest.Ingest([]string{file}, plotter.OutputDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	ids := make([]string, 0, len(entries))

	for _, entry := range entries {
		fmt.Fprintf(os.Stdout, "%s: %d runs -> %s\n", entry.Name, entry.Runs, entry.Dir)
		ids = append(ids, entry.Name)
	}

	log.Println("rendering the group summary from the ingested artifacts")

	handles, err := plotter.Summarize(ctx, "BenchmarkCodec", ids)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	err = engine.WaitAll(handles)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	for _, handle := range handles {
		fmt.Fprintln(os.Stdout, handle.Path())
	}
}
