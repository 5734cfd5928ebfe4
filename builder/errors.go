// SPDX-License-Identifier: MIT
// Package: softbody/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach context with %w: "<Method>: <detail>: %w".
//   - Errors from topology, boundary, hull and schedule pass through wrapped,
//     so errors.Is also matches their sentinels.
//   - Constructors never panic; option constructors (WithX) panic on
//     meaningless values.

package builder

import "errors"

// ErrDegenerateInput reports that the parameters describe no mesh at all
// (patch resolution below 2, negative rope resolution). It is a probe result,
// not a fault: nothing was appended to the body.
var ErrDegenerateInput = errors.New("builder: degenerate input, no mesh produced")

// ErrBadInput indicates tables that cannot describe a mesh: a negative index,
// an index past the supplied positions, or a flat coordinate array whose
// length is not a multiple of three.
var ErrBadInput = errors.New("builder: invalid input tables")

// ErrNeedRandSource indicates WithRandomizeConstraints without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil constructor passed to BuildBody.
var ErrConstructFailed = errors.New("builder: construction failed")
