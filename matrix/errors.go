// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Public functions return these sentinels (possibly wrapped with an
// operation tag) and tests check them via errors.Is. Invalid arguments are
// reported as errors; panics are reserved for programmer errors such as
// nonsensical option values or calling a method other than Free on a nil
// *Dense.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency. Sentinels are
// returned wrapped with the operation tag ("MulTiled: matrix: ...") so callers
// always match with errors.Is, never with ==.
//
// ERROR PRIORITY (enforced in tests):
// nil -> released -> dimension mismatch -> tile size.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// At/Set return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes,
	// e.g. Mul where a.Cols != b.Rows, or ragged literal rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense argument was passed, or that
	// Free was called on a nil receiver.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrReleased indicates use of a matrix after Free, including a second Free.
	ErrReleased = errors.New("matrix: matrix already released")

	// ErrUnknownStrategy is returned by Mul and ParseStrategy for an
	// unrecognised multiplication strategy.
	ErrUnknownStrategy = errors.New("matrix: unknown multiplication strategy")

	// ErrStrategyMismatch is returned by CrossCheck when two strategies
	// disagree beyond the configured tolerance.
	ErrStrategyMismatch = errors.New("matrix: strategies disagree beyond tolerance")
)

// ErrInvalidTileSize is returned by MulTiled when tile <= 0.
// A non-positive tile is an invalid dimension, so errors.Is(err,
// ErrInvalidDimensions) also holds.
var ErrInvalidTileSize = fmt.Errorf("%w: tile size must be > 0", ErrInvalidDimensions)

// ErrTooLarge is returned by NewDense when rows*cols elements, or their size
// in bytes, do not fit in an int. errors.Is(err, ErrInvalidDimensions) also holds.
var ErrTooLarge = fmt.Errorf("%w: element count overflows addressable size", ErrInvalidDimensions)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
// Keep it as an alias so errors.Is(err, ErrIndexOutOfBounds) remains true.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.

// Operation tags for uniform error wrapping.
const (
	opNewDense     = "NewDense"
	opNewDenseFrom = "NewDenseFrom"
	opRandom       = "Random"
	opClone        = "Clone"
	opFill         = "Fill"
	opMul          = "Mul"
	opMulNaive     = "MulNaive"
	opMulTiled     = "MulTiled"
	opMulBLAS      = "MulBLAS"
	opMaxAbsDiff   = "MaxAbsDiff"
	opCrossCheck   = "CrossCheck"
)

// matrixErrorf wraps err with an operation tag: "Op: underlying".
// Call only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
