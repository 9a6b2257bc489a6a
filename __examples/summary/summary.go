package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/internal/artifact"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

const exampleTimeout = 30 * time.Second

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), exampleTimeout)
	defer cancel()

	plotter, err := benchplot.NewScriptWithDefaults(ctx, ".benchplot-example")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	// Stop the plotter when the program exits
	defer plotter.Stop(ctx)

	log.Println("storing the per-benchmark artifacts of a sweep group")

	// Three benchmarks sweeping an input size. Numeric labels make the group
	// a sweep, summarized with error-bar charts over the input.
	group := []struct {
		id     string
		center float64
	}{
		{"sweep/1024", 510},
		{"sweep/2048", 980},
		{"sweep/4096", 2100},
	}

	ids := make([]string, 0, len(group))

	for _, bench := range group {
		err = storeArtifacts(plotter.OutputDir(), bench.id, bench.center)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)

			return
		}

		ids = append(ids, bench.id)
	}

	log.Println("rendering the summary charts of the group")

	handles, err := plotter.Summarize(ctx, "sweep", ids)
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

// storeArtifacts writes the current-generation sample and estimates of one
// benchmark, spreading the runs around center.
func storeArtifacts(outputDir, id string, center float64) error {
	dir := filepath.Join(outputDir, id, constants.NewSample)

	err := artifact.MkdirP(dir)
	if err != nil {
		return err
	}

	iters := []float64{100, 200, 300, 400, 500}
	raw := stats.RawSample{Iters: iters, Times: make([]float64, len(iters))}

	for i, n := range iters {
		raw.Times[i] = n * (center + float64(i) - 2)
	}

	err = artifact.Store(filepath.Join(dir, constants.SampleFile), raw)
	if err != nil {
		return err
	}

	estimates := stats.Estimates{
		stats.Mean:   estimateAround(center),
		stats.Median: estimateAround(center - 1),
		stats.Slope:  estimateAround(center + 1),
	}

	return artifact.Store(filepath.Join(dir, constants.EstimatesFile), estimates)
}

func estimateAround(center float64) stats.Estimate {
	return stats.Estimate{
		ConfidenceInterval: stats.ConfidenceInterval{
			ConfidenceLevel: constants.DefaultConfidenceLevel,
			LowerBound:      center - 2,
			UpperBound:      center + 2,
		},
		PointEstimate: center,
		StandardError: 1,
	}
}
