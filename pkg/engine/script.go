package engine

import (
	"context"
	"os"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/internal/sentinel"
)

// Script is a render engine that writes the chart script to disk instead of
// rendering it. The script lands next to the output path with the configured
// extension. It serves tests and hosts without a gnuplot installation, and
// the written scripts can be replayed through gnuplot by hand.
type Script struct {
	extension string
}

// NewScript creates a new script engine with the given options.
func NewScript(opts ...Option[Script]) (IEngine[Script], error) {
	engineInstance := &Script{
		extension: constants.DefaultScriptExtension,
	}
	// Apply the engine options
	ApplyOptions(engineInstance, opts...)

	if engineInstance.extension == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "script extension")
	}

	if !strings.HasPrefix(engineInstance.extension, ".") {
		engineInstance.extension = "." + engineInstance.extension
	}

	return engineInstance, nil
}

// Render writes the script beside the output path and returns a handle that
// is already complete.
func (s *Script) Render(_ context.Context, script, output string) (Handle, error) {
	scriptPath := replaceExtension(output, s.extension)

	err := os.WriteFile(scriptPath, []byte(script), 0o644)
	if err != nil {
		return nil, ewrap.Wrapf(err, "writing script %q", scriptPath)
	}

	return NewCompletedHandle(scriptPath, nil), nil
}

// replaceExtension swaps the extension of path for ext, which includes the
// leading dot.
func replaceExtension(path, ext string) string {
	if dot := strings.LastIndexByte(path, '.'); dot > strings.LastIndexByte(path, '/') {
		return path[:dot] + ext
	}

	return path + ext
}
