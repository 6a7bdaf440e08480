// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/liveness/shape checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly.
//
// Note:
//  - Composite validators follow a fixed sequence: NotNil → Live → Shape.

package matrix

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return matrixErrorf(tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateLive ensures m is non-nil and has not been released.
// Complexity: O(1).
func ValidateLive(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.released {
		return validatorErrorf("ValidateLive", ErrReleased)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes both are non-nil (caller must ensure).
func ValidateSameShape(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a and b are live and a.Cols == b.Rows.
// Complexity: O(1).
func ValidateMulCompatible(a, b *Dense) error {
	if err := ValidateLive(a); err != nil {
		return err
	}
	if err := ValidateLive(b); err != nil {
		return err
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateTileSize ensures tile > 0.
func ValidateTileSize(tile int) error {
	if tile <= 0 {
		return validatorErrorf("ValidateTileSize", ErrInvalidTileSize)
	}

	return nil
}
