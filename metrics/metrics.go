// SPDX-License-Identifier: MIT
//
// Package metrics exposes Prometheus collectors for mesh construction.
//
// A Recorder owns a private *prometheus.Registry; nothing is registered on the
// global default registry. All methods are safe on a nil *Recorder, so callers
// that do not care about metrics pass nil and pay nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/softbody/boundary"
	"github.com/katalvlaran/softbody/topology"
)

const namespace = "softbody"

// Recorder aggregates construction metrics for one process.
type Recorder struct {
	registry *prometheus.Registry

	BodiesBuilt      *prometheus.CounterVec
	ElementsEmitted  *prometheus.CounterVec
	BuildFailures    *prometheus.CounterVec
	BoundaryFaces    *prometheus.CounterVec
	NonManifoldFaces prometheus.Counter
	ScheduleRuns     prometheus.Counter
	ScheduledLinks   prometheus.Histogram
	AdjacentConflict *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all collectors registered on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.BodiesBuilt = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bodies_built_total",
			Help:      "Total number of bodies built, by mesh source",
		},
		[]string{"source"},
	)
	r.ElementsEmitted = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_emitted_total",
			Help:      "Total number of topology elements emitted, by kind",
		},
		[]string{"kind"}, // node, link, face, tetra, anchor
	)
	r.BuildFailures = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_failures_total",
			Help:      "Total number of failed body builds, by mesh source",
		},
		[]string{"source"},
	)
	r.BoundaryFaces = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boundary_faces_total",
			Help:      "Faces seen by boundary extraction, by outcome",
		},
		[]string{"outcome"}, // derived, cancelled, survived
	)
	r.NonManifoldFaces = f.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boundary_non_manifold_faces_total",
			Help:      "Face keys seen by more than two tetras",
		},
	)
	r.ScheduleRuns = f.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_runs_total",
			Help:      "Total number of link reorder runs",
		},
	)
	r.ScheduledLinks = f.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schedule_links",
			Help:      "Number of links per reorder run",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		},
	)
	r.AdjacentConflict = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schedule_adjacent_conflicts",
			Help:      "Consecutive link pairs sharing a node in the last run",
		},
		[]string{"stage"}, // before, after
	)

	return r
}

// Registry returns the registry holding r's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveBody records a successfully built body.
func (r *Recorder) ObserveBody(source string, b *topology.Body) {
	if r == nil || b == nil {
		return
	}
	s := b.Stats()
	r.BodiesBuilt.WithLabelValues(source).Inc()
	r.ElementsEmitted.WithLabelValues("node").Add(float64(s.Nodes))
	r.ElementsEmitted.WithLabelValues("link").Add(float64(s.Links))
	r.ElementsEmitted.WithLabelValues("face").Add(float64(s.Faces))
	r.ElementsEmitted.WithLabelValues("tetra").Add(float64(s.Tetras))
	r.ElementsEmitted.WithLabelValues("anchor").Add(float64(s.Anchors))
}

// ObserveFailure records a build that returned an error.
func (r *Recorder) ObserveFailure(source string) {
	if r == nil {
		return
	}
	r.BuildFailures.WithLabelValues(source).Inc()
}

// ObserveBoundary records one boundary extraction.
func (r *Recorder) ObserveBoundary(st boundary.Stats) {
	if r == nil {
		return
	}
	r.BoundaryFaces.WithLabelValues("derived").Add(float64(st.Derived))
	r.BoundaryFaces.WithLabelValues("cancelled").Add(float64(st.Cancelled))
	r.BoundaryFaces.WithLabelValues("survived").Add(float64(st.Survived))
	r.NonManifoldFaces.Add(float64(st.Repeated))
}

// ObserveSchedule records one link reorder run.
func (r *Recorder) ObserveSchedule(links, conflictsBefore, conflictsAfter int) {
	if r == nil {
		return
	}
	r.ScheduleRuns.Inc()
	r.ScheduledLinks.Observe(float64(links))
	r.AdjacentConflict.WithLabelValues("before").Set(float64(conflictsBefore))
	r.AdjacentConflict.WithLabelValues("after").Set(float64(conflictsAfter))
}
