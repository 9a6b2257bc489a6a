package engine

// Option is a function type that can be used to configure a render engine.
type Option[T IEngineConstrain] func(*T)

// ApplyOptions applies the given options to the given engine.
func ApplyOptions[T IEngineConstrain](engine *T, options ...Option[T]) {
	for _, option := range options {
		option(engine)
	}
}

// WithGnuplotBin sets the gnuplot binary to invoke. It accepts a bare name
// resolved on PATH or an absolute path.
func WithGnuplotBin(bin string) Option[Gnuplot] {
	return func(engine *Gnuplot) {
		engine.bin = bin
	}
}

// WithScriptExtension sets the extension the script engine writes chart
// scripts with.
func WithScriptExtension(extension string) Option[Script] {
	return func(engine *Script) {
		engine.extension = extension
	}
}
