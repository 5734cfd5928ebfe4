// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// randomize.go - seeded shuffle of links and faces.
//
// A post pass over the whole body. It draws from cfg.rng only, so a fixed
// seed gives a fixed order.

package builder

import (
	"fmt"

	"github.com/katalvlaran/softbody/topology"
)

const methodRandomize = "RandomizeConstraints"

func randomizeConstraints(b *topology.Body, cfg builderConfig) error {
	if cfg.rng == nil {
		return fmt.Errorf("%s: %w", methodRandomize, ErrNeedRandSource)
	}
	b.ShuffleLinks(cfg.rng.Shuffle)
	b.ShuffleFaces(cfg.rng.Shuffle)

	return nil
}
