// SPDX-License-Identifier: MIT

package matrix

// MulTiled computes C = A × B over square tiles of edge tile.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b), then ValidateTileSize(tile).
//   - Stage 2: allocate C (a.Rows × b.Cols).
//   - Stage 3: walk (i0, j0, k0) tile origins; each tile is clipped with min()
//     at the matrix edge, and inside it the i-k-j order streams one row of B
//     per a[i,k] into one row of C.
//
// Behavior highlights:
//   - Boundary tiles are partial; results do not depend on whether tile divides
//     the dimensions.
//   - For a fixed (i, j) the k contributions are added in increasing k, the
//     same order as MulNaive.
//   - tile == 1 degenerates to element-wise blocking; tile ≥ every dimension is
//     a single tile. Both are valid.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrDimensionMismatch.
//   - ErrInvalidTileSize when tile <= 0 (also matches ErrInvalidDimensions).
//
// Complexity:
//   - Time O(n·m·p), Space O(n·p) for the result; working set per tile is
//     3·tile² float64 values.
func MulTiled(a, b *Dense, tile int, opts ...Option) (*Dense, error) {
	return mulTiled(a, b, tile, gatherOptions(opts...))
}

func mulTiled(a, b *Dense, tile int, o Options) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMulTiled, err)
	}
	if err := ValidateTileSize(tile); err != nil {
		return nil, matrixErrorf(opMulTiled, err)
	}
	n, m, p := a.r, a.c, b.c
	res, err := newDense(n, p, o.trackerOr(a.tracker))
	if err != nil {
		return nil, matrixErrorf(opMulTiled, err)
	}

	ad, bd, cd := a.data, b.data, res.data
	var (
		i0, j0, k0       int // tile origins
		iMax, jMax, kMax int // clipped tile ends (exclusive)
		i, j, k          int
		rowA, rowB, rowC int
		av               float64
	)
	for i0 = 0; i0 < n; i0 += tile {
		iMax = min(i0+tile, n)
		for j0 = 0; j0 < p; j0 += tile {
			jMax = min(j0+tile, p)
			for k0 = 0; k0 < m; k0 += tile {
				kMax = min(k0+tile, m)
				for i = i0; i < iMax; i++ {
					rowA = i * m
					rowC = i * p
					for k = k0; k < kMax; k++ {
						av = ad[rowA+k]
						rowB = k * p
						for j = j0; j < jMax; j++ {
							cd[rowC+j] += av * bd[rowB+j]
						}
					}
				}
			}
		}
	}

	return res, nil
}
