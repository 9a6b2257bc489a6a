// Package introspect provides utilities for runtime inspection and type checking
// of render engines. It includes helpers to determine the specific implementation
// type of render engines at runtime, enabling conditional logic based on the
// underlying rendering mechanism.
package introspect

import (
	"github.com/hyp3rd/benchplot/pkg/engine"
)

// EngineChecker is a generic helper struct that provides runtime type checking
// capabilities for render engines. It allows inspection of the underlying engine
// implementation to determine its specific type (e.g., Gnuplot, Script) without
// requiring direct type assertions in client code.
//
// The generic type parameter T must satisfy the engine.IEngineConstrain interface,
// ensuring type safety across different engine implementations.
//
// Example usage:
//
//	checker := &EngineChecker[engine.Gnuplot]{
//	    Engine:     myEngine,
//	    EngineType: "gnuplot",
//	}
//	if checker.IsGnuplot() {
//	    // Handle gnuplot-specific logic
//	}
type EngineChecker[T engine.IEngineConstrain] struct {
	Engine     engine.IEngine[T]
	EngineType string
}

// IsGnuplot returns true if the engine is a Gnuplot.
func (c *EngineChecker[T]) IsGnuplot() bool {
	_, ok := c.Engine.(*engine.Gnuplot)

	return ok
}

// IsScript returns true if the engine is a Script.
func (c *EngineChecker[T]) IsScript() bool {
	_, ok := c.Engine.(*engine.Script)

	return ok
}

// GetRegisteredType returns the engine type as a string.
func (c *EngineChecker[T]) GetRegisteredType() string {
	return c.EngineType
}
