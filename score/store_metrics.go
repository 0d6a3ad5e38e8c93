package score

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "serpent",
			Subsystem: "score",
			Name:      "calls",
			Help:      "Calls processed by the score store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return t.ObserveDuration
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) Set(ctx context.Context, name, score string) error {
	defer instrument("Set")()
	return m.s.Set(ctx, name, score)
}

func (m *metrics) List(ctx context.Context) ([]Entry, error) {
	defer instrument("List")()
	return m.s.List(ctx)
}
