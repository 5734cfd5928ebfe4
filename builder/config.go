// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - rng             = nil          (no randomness unless seeded)
//   - randomize       = false        (links and faces keep construction order)
//   - hull            = QuickHull    (hull.NewQuickHull())
//   - logger          = discard
//   - recorder        = nil          (metrics off)
//   - mass            = 1.0          (per node)
//   - strictBoundary  = false        (tolerant face cancellation)
//   - tetraLinks      = true
//   - faceLinks       = false
//   - boundaryWorkers = 1
//   - reorderLinks    = false

package builder

import (
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/softbody/hull"
	"github.com/katalvlaran/softbody/metrics"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	rng       *rand.Rand
	randomize bool

	hull hull.Computer

	logger   *slog.Logger
	recorder *metrics.Recorder
	source   string // metrics label for the body

	mass float64

	strictBoundary  bool
	tetraLinks      bool
	faceLinks       bool
	boundaryWorkers int

	reorderLinks bool
}

const (
	defaultMass            = 1.0
	defaultBoundaryWorkers = 1
	defaultSource          = "custom"
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		hull:            hull.NewQuickHull(),
		logger:          slog.New(slog.DiscardHandler),
		source:          defaultSource,
		mass:            defaultMass,
		tetraLinks:      true,
		boundaryWorkers: defaultBoundaryWorkers,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// uniformMasses returns n copies of the configured node mass.
func (c builderConfig) uniformMasses(n int) []float64 {
	m := make([]float64, n)
	for i := range m {
		m[i] = c.mass
	}

	return m
}
