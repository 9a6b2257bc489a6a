package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/pkg/engine"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

const exampleTimeout = 30 * time.Second

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), exampleTimeout)
	defer cancel()

	// Create a plotter backed by the script engine, which writes the chart
	// scripts to disk. Swap in NewGnuplotWithDefaults to spawn real renders.
	plotter, err := benchplot.NewScriptWithDefaults(ctx, ".benchplot-example")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	// Stop the plotter when the program exits
	defer plotter.Stop(ctx)

	// A measured sample: per-run iteration counts and total elapsed nanoseconds
	raw := stats.RawSample{
		Iters: []float64{100, 200, 300, 400, 500},
		Times: []float64{51000, 99800, 150300, 201000, 249500},
	}

	data, err := raw.Data()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	avgTimes := data.AvgTimes()
	benchDir := filepath.Join(plotter.OutputDir(), "decode", constants.NewSample)

	log.Println("rendering the thumbnail density chart")

	small, err := plotter.DensitySmall(ctx, avgTimes, filepath.Join(benchDir, "pdf_small.svg"), figure.Size{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	log.Println("rendering the full density chart with outlier classification")
	// Classify every observation against the Tukey fences of the sample
	labeled, err := stats.TukeyClassify(avgTimes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	full, err := plotter.Density(ctx, data, labeled, "decode", filepath.Join(benchDir, "pdf.svg"), figure.Size{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	log.Println("rendering the regression chart")
	// The slope estimate is produced upstream by a bootstrap; bracket it here
	slope := stats.Estimate{
		ConfidenceInterval: stats.ConfidenceInterval{
			ConfidenceLevel: constants.DefaultConfidenceLevel,
			LowerBound:      495,
			UpperBound:      506,
		},
		PointEstimate: 500.6,
		StandardError: 2.75,
	}

	regression, err := plotter.Regression(ctx, data, slope, "decode", filepath.Join(benchDir, "regression.svg"), figure.Size{}, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	handles := []engine.Handle{small, full, regression}

	// Wait for every render to finish before reading the paths
	err = engine.WaitAll(handles)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	for _, handle := range handles {
		fmt.Fprintln(os.Stdout, handle.Path())
	}
}
