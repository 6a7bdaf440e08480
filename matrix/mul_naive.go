// SPDX-License-Identifier: MIT

package matrix

// MulNaive computes C = A × B with the textbook i-j-k triple loop.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: allocate C (a.Rows × b.Cols) on the tracker from opts, or a's tracker.
//   - Stage 3: for each (i, j) accumulate Σ_k a[i,k]*b[k,j] in k order and store it.
//
// Behavior highlights:
//   - No blocking; the correctness and performance baseline for Tiled and BLAS.
//   - Operands are never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch (wrapped with "MulNaive").
//
// Complexity:
//   - Time O(n·m·p), Space O(n·p) for the result.
func MulNaive(a, b *Dense, opts ...Option) (*Dense, error) {
	return mulNaive(a, b, gatherOptions(opts...))
}

func mulNaive(a, b *Dense, o Options) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMulNaive, err)
	}
	n, m, p := a.r, a.c, b.c
	res, err := newDense(n, p, o.trackerOr(a.tracker))
	if err != nil {
		return nil, matrixErrorf(opMulNaive, err)
	}

	ad, bd, cd := a.data, b.data, res.data
	var (
		i, j, k    int
		rowA, rowC int
		sum        float64
	)
	for i = 0; i < n; i++ {
		rowA = i * m
		rowC = i * p
		for j = 0; j < p; j++ {
			sum = 0
			for k = 0; k < m; k++ {
				sum += ad[rowA+k] * bd[k*p+j]
			}
			cd[rowC+j] = sum
		}
	}

	return res, nil
}
