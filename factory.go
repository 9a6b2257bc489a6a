package benchplot

import (
	"github.com/hyp3rd/benchplot/internal/constants"
	"github.com/hyp3rd/benchplot/pkg/engine"
)

// IEngineConstructor is an interface for render engine constructors with type safety.
// It returns a typed engine.IEngine[T] instead of any.
type IEngineConstructor[T engine.IEngineConstrain] interface {
	Create(cfg *Config[T]) (engine.IEngine[T], error)
}

// GnuplotEngineConstructor constructs Gnuplot engines.
type GnuplotEngineConstructor struct{}

// Create creates a new Gnuplot engine.
func (GnuplotEngineConstructor) Create(cfg *Config[engine.Gnuplot]) (engine.IEngine[engine.Gnuplot], error) {
	return engine.NewGnuplot(cfg.GnuplotOptions...)
}

// ScriptEngineConstructor constructs Script engines.
type ScriptEngineConstructor struct{}

// Create creates a new Script engine.
func (ScriptEngineConstructor) Create(cfg *Config[engine.Script]) (engine.IEngine[engine.Script], error) {
	return engine.NewScript(cfg.ScriptOptions...)
}

// EngineManager is a factory for creating render engine instances.
// It maintains a registry of engine constructors. We store them as any internally,
// and cast to the typed constructor at use site based on T.
type EngineManager struct {
	engineRegistry map[string]any
}

// getDefaultEngines returns the default set of engine constructors.
func getDefaultEngines() map[string]any {
	return map[string]any{
		constants.GnuplotEngine: GnuplotEngineConstructor{},
		constants.ScriptEngine:  ScriptEngineConstructor{},
	}
}

// NewEngineManager creates a new EngineManager with default engines pre-registered.
func NewEngineManager() *EngineManager {
	manager := &EngineManager{
		engineRegistry: make(map[string]any),
	}
	// Register the default engines
	for name, constructor := range getDefaultEngines() {
		manager.RegisterEngine(name, constructor)
	}

	return manager
}

// NewEmptyEngineManager creates a new EngineManager without default engines.
// This is useful for testing or when you want to register only specific engines.
func NewEmptyEngineManager() *EngineManager {
	return &EngineManager{
		engineRegistry: make(map[string]any),
	}
}

// RegisterEngine registers a new engine constructor. The constructor should be
// a value implementing IEngineConstructor[T] for some T; stored as any.
func (em *EngineManager) RegisterEngine(name string, constructor any) {
	em.engineRegistry[name] = constructor
}

// GetDefaultManager returns a new EngineManager with default engines pre-registered.
func GetDefaultManager() *EngineManager { return NewEngineManager() }
