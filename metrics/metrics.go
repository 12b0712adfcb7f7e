// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package metrics exports board activity as prometheus metrics.
//
package metrics

import (
	"io"

	"github.com/db47h/boardsim"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Registry holds the board metrics.
//
type Registry struct {
	registry *prometheus.Registry

	Propagations  prometheus.Counter
	Visits        prometheus.Histogram
	StateChanges  *prometheus.CounterVec
	DisplayWrites prometheus.Counter
	EdgesAdded    prometheus.Counter
	EdgesRemoved  prometheus.Counter
	Edges         prometheus.Gauge
	Resets        prometheus.Counter
	Loads         prometheus.Counter
}

// NewRegistry returns a new registry with all board metrics registered.
//
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)
	r.Propagations = f.NewCounter(prometheus.CounterOpts{
		Name: "boardsim_propagations_total",
		Help: "Total number of completed signal propagations",
	})
	r.Visits = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "boardsim_propagation_visits",
		Help:    "Number of port expansions per propagation",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200},
	})
	r.StateChanges = f.NewCounterVec(prometheus.CounterOpts{
		Name: "boardsim_state_changes_total",
		Help: "Total number of entity state changes",
	}, []string{"entity"})
	r.DisplayWrites = f.NewCounter(prometheus.CounterOpts{
		Name: "boardsim_display_changes_total",
		Help: "Total number of display panel changes",
	})
	r.EdgesAdded = f.NewCounter(prometheus.CounterOpts{
		Name: "boardsim_edges_added_total",
		Help: "Total number of connections made",
	})
	r.EdgesRemoved = f.NewCounter(prometheus.CounterOpts{
		Name: "boardsim_edges_removed_total",
		Help: "Total number of connections removed",
	})
	r.Edges = f.NewGauge(prometheus.GaugeOpts{
		Name: "boardsim_edges",
		Help: "Current number of connections",
	})
	r.Resets = f.NewCounter(prometheus.CounterOpts{
		Name: "boardsim_resets_total",
		Help: "Total number of board resets",
	})
	r.Loads = f.NewCounter(prometheus.CounterOpts{
		Name: "boardsim_loads_total",
		Help: "Total number of snapshots loaded",
	})
	return r
}

// Gatherer returns the underlying prometheus registry.
//
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// Record updates the metrics for event e.
//
func (r *Registry) Record(e boardsim.Event) {
	switch e := e.(type) {
	case boardsim.Settled:
		r.Propagations.Inc()
		r.Visits.Observe(float64(e.Visits))
	case boardsim.StateChanged:
		r.StateChanges.WithLabelValues(e.Entity.String()).Inc()
	case boardsim.DisplayChanged:
		r.DisplayWrites.Inc()
	case boardsim.EdgeChanged:
		if e.Added {
			r.EdgesAdded.Inc()
			r.Edges.Inc()
		} else {
			r.EdgesRemoved.Inc()
			r.Edges.Dec()
		}
	case boardsim.BoardReset:
		r.Resets.Inc()
		r.Edges.Set(0)
	case boardsim.BoardLoaded:
		r.Loads.Inc()
		r.Edges.Set(float64(e.Edges))
	}
}

// Observe records the events of board b until the returned function is
// called. The edge gauge starts at the current number of connections.
//
func (r *Registry) Observe(b *boardsim.Board) (stop func()) {
	r.Edges.Set(float64(len(b.Edges())))
	return b.Subscribe(r.Record)
}

// WriteText writes all metrics to w in the prometheus text format.
//
func (r *Registry) WriteText(w io.Writer) error {
	mfs, err := r.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "failed to write metrics")
		}
	}
	return nil
}
