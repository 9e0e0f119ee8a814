package experiment

import (
	"fmt"
	"sort"

	"github.com/x509cert/gravsim/internal/dynamo"
	"github.com/x509cert/gravsim/internal/integrators"
	"github.com/x509cert/gravsim/internal/metrics"
)

type Registry struct {
	integrators map[string]func(damping float32) dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func(float32) dynamo.Integrator),
	}

	r.integrators["damped"] = func(d float32) dynamo.Integrator { return integrators.NewDampedEuler(d) }
	r.integrators["semi_implicit"] = func(d float32) dynamo.Integrator { return integrators.NewSemiImplicit(d) }

	return r
}

func (r *Registry) GetIntegrator(name string, damping float32) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(damping), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []dynamo.Metric {
	return metrics.Defaults()
}
