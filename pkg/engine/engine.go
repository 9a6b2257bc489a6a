// Package engine provides the render engines that turn serialized chart
// scripts into artifacts. It defines the contract that all engines must
// follow: launching a render without blocking and returning a handle the
// caller drains later. The package supports generic engine implementations
// with type constraints to ensure type safety.
//
// Two engines are provided:
//   - Gnuplot spawns one gnuplot process per chart and streams the script
//     on standard input.
//   - Script writes the script next to the output path instead of
//     rendering, serving tests and hosts without a gnuplot installation.
package engine

import (
	"context"

	"github.com/hyp3rd/ewrap"
)

// IEngineConstrain defines the type constraint for render engine
// implementations. It restricts the generic type parameter to supported
// engine types, ensuring type safety and proper implementation at compile
// time.
type IEngineConstrain interface {
	Gnuplot | Script
}

// IEngine defines the contract that all render engines must implement.
// Render must not block on the external process: it launches the render and
// returns a Handle immediately. A launch failure is fatal to the calling
// chart operation; failures of the render itself surface from Handle.Wait.
type IEngine[T IEngineConstrain] interface {
	// Render starts rendering the given script into the output path and
	// returns a handle on the pending render.
	Render(ctx context.Context, script, output string) (Handle, error)
}

// Handle is one pending render. Handles must be drained: an undrained handle
// may represent a still-running external process.
type Handle interface {
	// Wait blocks until the render completes and returns its error, if any.
	Wait() error
	// Path returns the path of the artifact the render produces.
	Path() string
}

// WaitAll drains every handle and collects the failures into one error.
func WaitAll(handles []Handle) error {
	eg := ewrap.NewErrorGroup()

	for _, handle := range handles {
		if handle == nil {
			continue
		}

		err := handle.Wait()
		if err != nil {
			eg.Add(err)
		}
	}

	return eg.ErrorOrNil()
}

// completedHandle is a handle on a render that already finished.
type completedHandle struct {
	path string
	err  error
}

// NewCompletedHandle returns a handle that is already done. It backs the
// script engine and cached incremental renders.
func NewCompletedHandle(path string, err error) Handle {
	return &completedHandle{path: path, err: err}
}

// Wait returns the recorded outcome immediately.
func (h *completedHandle) Wait() error {
	return h.err
}

// Path returns the path of the produced artifact.
func (h *completedHandle) Path() string {
	return h.path
}
