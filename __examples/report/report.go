package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
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

// This example serves the rendered charts over HTTP and queries the inventory.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), exampleTimeout)
	defer cancel()

	config := benchplot.NewConfig[engine.Script](constants.ScriptEngine)
	config.PlotterOptions = append(config.PlotterOptions,
		benchplot.WithOutputDir[engine.Script](".benchplot-example"),
		benchplot.WithReportHTTP[engine.Script]("127.0.0.1:0"),
	)

	plotter, err := benchplot.New(ctx, benchplot.GetDefaultManager(), config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	// Stop the plotter and the report server when the program exits
	defer plotter.Stop(ctx)

	// Render one chart so the inventory has something to list
	sample := stats.Sample{498, 501, 499, 502, 500}
	path := filepath.Join(plotter.OutputDir(), "decode", constants.NewSample, "pdf_small.svg")

	handle, err := plotter.DensitySmall(ctx, sample, path, figure.Size{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	err = handle.Wait()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	addr := plotter.ReportHTTPAddress()
	log.Println("report server listening on", addr)

	// Give the server a moment to start accepting
	time.Sleep(50 * time.Millisecond)

	resp, err := http.Get("http://" + addr + "/charts")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	fmt.Fprintln(os.Stdout, string(body))
}
