// SPDX-License-Identifier: MIT

package matrix

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// MulBLAS computes C = A × B with a vendor Dgemm.
//
// The implementation defaults to whatever blas64 has registered (gonum's pure
// Go kernels unless the program called blas64.Use). WithBLAS selects another
// one, e.g. gonum.org/v1/netlib/blas/netlib over OpenBLAS or MKL.
//
// Behavior highlights:
//   - Row-major buffers are passed as-is with lda = a.Cols, ldb = ldc = b.Cols.
//   - Summation order is the library's; results agree with MulNaive within
//     DefaultTolerance, not bitwise.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch (wrapped with "MulBLAS").
//
// Complexity:
//   - Time O(n·m·p), Space O(n·p) for the result.
func MulBLAS(a, b *Dense, opts ...Option) (*Dense, error) {
	return mulBLAS(a, b, gatherOptions(opts...))
}

func mulBLAS(a, b *Dense, o Options) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMulBLAS, err)
	}
	n, m, p := a.r, a.c, b.c
	res, err := newDense(n, p, o.trackerOr(a.tracker))
	if err != nil {
		return nil, matrixErrorf(opMulBLAS, err)
	}

	impl := o.impl
	if impl == nil {
		impl = blas64.Implementation()
	}
	impl.Dgemm(blas.NoTrans, blas.NoTrans, n, p, m,
		1, a.data, m,
		b.data, p,
		0, res.data, p)

	return res, nil
}
