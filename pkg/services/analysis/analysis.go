package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// ErrNotRegistered marks lookups of analyses no factory was registered for.
var ErrNotRegistered = errors.New("not registered")

// Analyzer runs one analysis over an extracted record set and renders the
// outcome as a report.
type Analyzer interface {
	// Name returns the identifier used on the command line and in the API.
	Name() string
	// Run computes the analysis. A domain.ErrNoData or domain.ErrEmptyJoin
	// result is an outcome to present, not a crash.
	Run(ctx context.Context, set *domain.RecordSet) (*domain.Report, error)
}

// Factory is a function type that creates an Analyzer from analysis parameters
type Factory func(params domain.Params) (Analyzer, error)

// Registry manages analysis factories
type Registry interface {
	// Register adds a new analysis factory
	Register(name string, factory Factory) error
	// Create instantiates an analyzer by name using the provided parameters
	Create(name string, params domain.Params) (Analyzer, error)
	// ListAnalyses returns the registered analysis names, sorted
	ListAnalyses() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an analysis registry pre-populated with the given
// factories.
func NewRegistry(factories map[string]Factory) Registry {
	r := &registry{factories: make(map[string]Factory, len(factories))}
	for name, factory := range factories {
		// Duplicates are impossible coming from a map literal.
		_ = r.Register(name, factory)
	}
	return r
}

// DefaultRegistry wires up every built-in analysis.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Factory{
		"workouts": NewWorkoutAnalyzer,
		"sleep":    NewSleepAnalyzer,
		"sources":  NewSourceAnalyzer,
		"events":   NewEventsAnalyzer,
	})
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("analysis name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("analysis %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string, params domain.Params) (Analyzer, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("analysis %q is %w", name, ErrNotRegistered)
	}

	return factory(params)
}

func (r *registry) ListAnalyses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func window(start, end domain.Date) domain.TimePeriod {
	return domain.TimePeriod{
		Start:    start.Time(),
		End:      end.Time(),
		Duration: start.DaysUntil(end) + 1,
	}
}
