// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Equal reports whether m and other have the same shape and bitwise-equal
// elements. Nil or released operands are never equal, not even to themselves.
// Equality is exact; use AllClose for floating-point tolerance.
// Complexity: O(r*c).
func (m *Dense) Equal(other *Dense) bool {
	if ValidateLive(m) != nil || ValidateLive(other) != nil {
		return false
	}
	if ValidateSameShape(m, other) != nil {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}

	return true
}

// AllClose reports whether a and b have the same shape and every pair of
// elements is within atol absolutely or within rtol relative to the larger
// magnitude (scalar.EqualWithinAbsOrRel).
// NaN never compares close; equal infinities do. Nil or released operands
// yield false.
// Complexity: O(r*c).
func AllClose(a, b *Dense, atol, rtol float64) bool {
	if ValidateLive(a) != nil || ValidateLive(b) != nil {
		return false
	}
	if ValidateSameShape(a, b) != nil {
		return false
	}

	return floats.EqualFunc(a.data, b.data, func(x, y float64) bool {
		return scalar.EqualWithinAbsOrRel(x, y, atol, rtol)
	})
}

// MaxAbsDiff returns max |a[i,j]-b[i,j]| over all elements. It is NaN when
// either operand holds a NaN.
//
// Errors:
//   - ErrNilMatrix / ErrReleased for unusable operands.
//   - ErrDimensionMismatch when shapes differ.
func MaxAbsDiff(a, b *Dense) (float64, error) {
	if err := ValidateLive(a); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	if err := ValidateLive(b); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}
	// floats.Distance skips NaN differences.
	if floats.HasNaN(a.data) || floats.HasNaN(b.data) {
		return math.NaN(), nil
	}

	return floats.Distance(a.data, b.data, math.Inf(1)), nil
}
