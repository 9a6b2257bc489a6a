package benchplot

import "log"

// Logger describes a logging interface allowing to implement different external, or custom logger.
// Tested with logrus, and Uber's Zap (high-performance), but should work with any other logger that matches the interface.
type Logger interface {
	Printf(format string, v ...any)
}

// stdLogger routes warnings through the standard library logger. It is the
// default until WithLogger replaces it.
type stdLogger struct{}

func (stdLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
