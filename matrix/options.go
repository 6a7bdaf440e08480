// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for construction and products.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies setters over defaults.
//
// Design goals:
//   - No dead switches: each option changes behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package matrix

import (
	"math"

	"gonum.org/v1/gonum/blas"

	"github.com/katalvlaran/densemul/alloc"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTileSize is the tile edge used by Mul(Tiled, ...) when no
	// WithTileSize option is given. 64×64 float64 = 32 KiB per block.
	DefaultTileSize = 64

	// DefaultTolerance is the acceptance tolerance between strategies,
	// applied both absolutely and relatively.
	DefaultTolerance = 1e-6
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicTileSizeInvalid  = "matrix: WithTileSize: tile must be > 0"
	panicToleranceInvalid = "matrix: WithTolerance: tol must be finite, non-negative"
	panicTrackerNil       = "matrix: WithTracker: tracker must be non-nil"
	panicBLASNil          = "matrix: WithBLAS: implementation must be non-nil"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tracker  *alloc.Tracker // nil ⇒ operand's tracker, or alloc.Default()
	tileSize int            // DefaultTileSize
	impl     blas.Float64   // nil ⇒ blas64.Implementation()
	tol      float64        // DefaultTolerance
}

// WithTracker routes allocation accounting of newly created matrices
// (constructors and product results) to t.
//
// Panics if t is nil.
func WithTracker(t *alloc.Tracker) Option {
	if t == nil {
		panic(panicTrackerNil)
	}

	return func(o *Options) { o.tracker = t }
}

// WithTileSize sets the tile edge used by Mul(Tiled, ...).
// MulTiled takes the tile explicitly and ignores this option.
//
// Panics if tile <= 0; MulTiled reports the same condition as an error
// because its tile argument is runtime data rather than configuration.
func WithTileSize(tile int) Option {
	if tile <= 0 {
		panic(panicTileSizeInvalid)
	}

	return func(o *Options) { o.tileSize = tile }
}

// WithBLAS selects the Dgemm implementation used by MulBLAS, e.g. a cgo
// netlib binding backed by OpenBLAS or MKL.
//
// Panics if impl is nil.
func WithBLAS(impl blas.Float64) Option {
	if impl == nil {
		panic(panicBLASNil)
	}

	return func(o *Options) { o.impl = impl }
}

// WithTolerance sets the tolerance consulted by CrossCheck.
//
// Panics if tol is negative, NaN or ±Inf.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// defaultOptions returns a fresh Options with documented defaults.
func defaultOptions() Options {
	return Options{
		tileSize: DefaultTileSize,
		tol:      DefaultTolerance,
	}
}

// gatherOptions applies opts over the defaults, in order.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// trackerOr returns the configured tracker, falling back to fallback and then
// to the process-wide default.
func (o Options) trackerOr(fallback *alloc.Tracker) *alloc.Tracker {
	switch {
	case o.tracker != nil:
		return o.tracker
	case fallback != nil:
		return fallback
	default:
		return alloc.Default()
	}
}
