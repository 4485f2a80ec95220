package promadapter

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/xconsole"
)

const (
	namespace = "xconsole"
	subsystem = "log"
)

// Metrics counts published entries per level and logger id.
type Metrics struct {
	Entries *prometheus.CounterVec
}

// New returns Metrics ready to be registered.
func New() *Metrics {
	return &Metrics{
		Entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "entries_total",
			Help:      "Number of log entries by level and logger id.",
		}, []string{"level", "id"}),
	}
}

// Collectors returns the collectors to register.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Entries}
}

// OnLog implements xconsole.Subscriber.
func (m *Metrics) OnLog(e xconsole.Entry) error {
	m.Entries.WithLabelValues(strings.ToLower(e.Level.String()), strings.TrimSpace(e.ID)).Inc()
	return nil
}

// Register creates Metrics, registers them with reg and subscribes them to
// every level event of r (xconsole.DefaultRegistry() when nil).
func Register(reg prometheus.Registerer, r *xconsole.Registry) (*Metrics, error) {
	if r == nil {
		r = xconsole.DefaultRegistry()
	}
	m := New()
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	r.SubscribeLevels(m)
	return m, nil
}
