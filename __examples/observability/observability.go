package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/benchplot"
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/pkg/figure"
	"github.com/hyp3rd/benchplot/pkg/middleware"
	"github.com/hyp3rd/benchplot/pkg/stats"
)

const exampleTimeout = 30 * time.Second

// This example shows how to wrap the plotter with logging and OpenTelemetry middleware.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), exampleTimeout)
	defer cancel()

	plotter, err := benchplot.NewScriptWithDefaults(ctx, ".benchplot-example")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	// Build a service from the plotter to apply middleware.
	svc := benchplot.Service(plotter)

	// Use noop providers for a minimal example. Replace with real SDK providers in production.
	meter := noop.NewMeterProvider().Meter("benchplot/examples")
	tracer := trace.NewNoopTracerProvider().Tracer("benchplot/examples")

	// Apply logging, OTel tracing, and OTel metrics middleware.
	svc = benchplot.ApplyMiddleware(svc,
		func(next benchplot.Service) benchplot.Service {
			return middleware.NewLoggingMiddleware(next, log.New(os.Stderr, "benchplot: ", log.LstdFlags))
		},
		func(next benchplot.Service) benchplot.Service {
			return middleware.NewOTelTracingMiddleware(next, tracer, middleware.WithCommonAttributes(
				attribute.String("component", "benchplot"),
			))
		},
		func(next benchplot.Service) benchplot.Service {
			mw, _ := middleware.NewOTelMetricsMiddleware(next, meter)

			return mw
		},
	)
	defer svc.Stop(ctx)

	sample := stats.Sample{498, 501, 499, 502, 500}
	path := filepath.Join(svc.OutputDir(), "decode", constants.NewSample, "pdf_small.svg")

	handle, err := svc.DensitySmall(ctx, sample, path, figure.Size{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	fmt.Fprintln(os.Stdout, "chart script:", handle.Path())
}
