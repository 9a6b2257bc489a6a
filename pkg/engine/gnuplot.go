package engine

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// defaultGnuplotBin is the binary looked up on PATH when no explicit path is
// configured.
const defaultGnuplotBin = "gnuplot"

// Gnuplot renders charts by spawning one gnuplot process per chart. The
// script is streamed on standard input and standard error is captured so a
// failed render reports what gnuplot complained about.
type Gnuplot struct {
	bin string
}

// NewGnuplot creates a new gnuplot engine with the given options.
func NewGnuplot(opts ...Option[Gnuplot]) (IEngine[Gnuplot], error) {
	engineInstance := &Gnuplot{
		bin: defaultGnuplotBin,
	}
	// Apply the engine options
	ApplyOptions(engineInstance, opts...)

	if engineInstance.bin == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "gnuplot binary")
	}

	return engineInstance, nil
}

// Render launches a gnuplot process for the script. The returned handle
// waits on the process; a failure to launch is returned immediately.
func (g *Gnuplot) Render(ctx context.Context, script, output string) (Handle, error) {
	cmd := exec.CommandContext(ctx, g.bin)
	cmd.Stdin = strings.NewReader(script)

	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr

	err := cmd.Start()
	if err != nil {
		return nil, ewrap.Wrapf(err, "launching %s for %q", g.bin, output)
	}

	return &processHandle{cmd: cmd, stderr: stderr, path: output}, nil
}

// processHandle tracks one running gnuplot process.
type processHandle struct {
	cmd    *exec.Cmd
	stderr *bytes.Buffer
	path   string
}

// Wait blocks until the process exits. Exit errors carry the captured
// standard error of the render.
func (h *processHandle) Wait() error {
	err := h.cmd.Wait()
	if err != nil {
		return ewrap.Wrapf(err, "rendering %q: %s", h.path, strings.TrimSpace(h.stderr.String()))
	}

	return nil
}

// Path returns the chart path the process renders into.
func (h *processHandle) Path() string {
	return h.path
}
