package calltree

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ prometheus.Collector = (*Profiler)(nil)

// metrics describe the profiler itself, not the code being profiled.
type metrics struct {
	reg *prometheus.Registry

	enters          prometheus.Counter
	recursiveEnters prometheus.Counter
	leaves          prometheus.Counter
	unbalanced      prometheus.Counter
	nodes           prometheus.Gauge
	depth           prometheus.Gauge
}

func newMetrics(namespace string, labels prometheus.Labels) *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		enters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "enters_total",
			Help:        "Total number of scope entries observed.",
			ConstLabels: labels,
		}),
		recursiveEnters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "recursive_enters_total",
			Help:        "Scope entries collapsed into an already open node.",
			ConstLabels: labels,
		}),
		leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "leaves_total",
			Help:        "Total number of scope exits observed.",
			ConstLabels: labels,
		}),
		unbalanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "unbalanced_leaves_total",
			Help:        "Scope exits rejected because no entry was open.",
			ConstLabels: labels,
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "nodes",
			Help:        "Number of distinct call paths in the tree, root included.",
			ConstLabels: labels,
		}),
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "depth",
			Help:        "Current nesting depth of open scopes.",
			ConstLabels: labels,
		}),
	}

	m.reg.MustRegister(m.enters)
	m.reg.MustRegister(m.recursiveEnters)
	m.reg.MustRegister(m.leaves)
	m.reg.MustRegister(m.unbalanced)
	m.reg.MustRegister(m.nodes)
	m.reg.MustRegister(m.depth)
	return m
}

func (p *Profiler) Describe(descs chan<- *prometheus.Desc) {
	p.metrics.reg.Describe(descs)
}

func (p *Profiler) Collect(ch chan<- prometheus.Metric) {
	p.metrics.reg.Collect(ch)
}
