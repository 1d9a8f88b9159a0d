package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/turbo-editor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "turbo_editor"

// Metrics holds the editor collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	NodesAdded     *prometheus.CounterVec
	NodesRemoved   prometheus.Counter
	NodesMoved     prometheus.Counter
	PropertyWrites *prometheus.CounterVec
	Generations    prometheus.Counter
	GenerateTime   prometheus.Histogram
	OutputBytes    prometheus.Histogram
}

// NewMetrics creates the collectors on a private registry.
// Pass withRuntime to also export Go runtime and process collectors.
func NewMetrics(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		NodesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_added_total",
			Help:      "Nodes added to scenes, by node type.",
		}, []string{"node_type"}),
		NodesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_removed_total",
			Help:      "Nodes removed from scenes, descendants included.",
		}),
		NodesMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "nodes_moved_total",
			Help:      "Reparent or reorder operations.",
		}),
		PropertyWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "property_writes_total",
			Help:      "Property writes, by value kind.",
		}, []string{"kind"}),
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "generations_total",
			Help:      "Completed code generation passes.",
		}),
		GenerateTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generate_duration_seconds",
			Help:      "Duration of code generation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		OutputBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "generate_output_bytes",
			Help:      "Size of generated programs.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}),
	}
	reg.MustRegister(m.NodesAdded, m.NodesRemoved, m.NodesMoved, m.PropertyWrites,
		m.Generations, m.GenerateTime, m.OutputBytes)
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeAdded: func(_ context.Context, e *domain.NodeEvent) {
			m.NodesAdded.WithLabelValues(e.NodeType.String()).Inc()
		},
		OnNodeRemoved: func(_ context.Context, e *domain.NodeEvent) {
			n := e.Removed
			if n < 1 {
				n = 1
			}
			m.NodesRemoved.Add(float64(n))
		},
		OnNodeMoved: func(_ context.Context, _ *domain.NodeEvent) {
			m.NodesMoved.Inc()
		},
		OnPropertySet: func(_ context.Context, e *domain.PropertyEvent) {
			m.PropertyWrites.WithLabelValues(e.Value.Kind().String()).Inc()
		},
		OnGenerate: func(_ context.Context, e *domain.GenerateEvent) {
			m.Generations.Inc()
			m.GenerateTime.Observe(e.Duration.Seconds())
			m.OutputBytes.Observe(float64(e.Bytes))
		},
	}
}
