package refine

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	passes     prometheus.Counter
	requests   prometheus.Counter
	bisections prometheus.Counter
	nodes      prometheus.Counter
	elements   prometheus.Gauge
}

func newMetrics(prefix string, reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "refinement_passes_total",
			Help: "Number of refinement passes applied.",
		}),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "refinement_requests_total",
			Help: "Number of elements queued for refinement.",
		}),
		bisections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "bisections_total",
			Help: "Number of element bisections, including conformity closure.",
		}),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "nodes_created_total",
			Help: "Number of midpoint nodes created by bisection.",
		}),
		elements: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "elements",
			Help: "Element count of the most recently refined mesh.",
		}),
	}
	var err error
	if m.passes, err = register(reg, m.passes); err != nil {
		return nil, err
	}
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.bisections, err = register(reg, m.bisections); err != nil {
		return nil, err
	}
	if m.nodes, err = register(reg, m.nodes); err != nil {
		return nil, err
	}
	if m.elements, err = register(reg, m.elements); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, reusing a collector already registered under the
// same descriptor. A nil reg leaves c unregistered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if reg == nil {
		return c, nil
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
