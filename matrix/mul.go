// SPDX-License-Identifier: MIT

// Package matrix - strategy dispatch and cross-checking.
//
// The three product producers share one signature internally and are
// selected through a fixed table indexed by Strategy, so adding a strategy is
// one enum value plus one table entry.

package matrix

import "fmt"

// mulFunc is the internal shape shared by every strategy.
type mulFunc func(a, b *Dense, o Options) (*Dense, error)

// mulTable maps each Strategy to its kernel. Tiled reads the tile size from
// Options (WithTileSize, default DefaultTileSize).
var mulTable = [strategyCount]mulFunc{
	Naive: mulNaive,
	Tiled: func(a, b *Dense, o Options) (*Dense, error) { return mulTiled(a, b, o.tileSize, o) },
	BLAS:  mulBLAS,
}

// Mul computes C = A × B with the selected strategy.
//
// Errors:
//   - ErrUnknownStrategy for an invalid s.
//   - Whatever the selected strategy returns, additionally tagged "Mul".
//
// Complexity: that of the selected strategy.
func Mul(s Strategy, a, b *Dense, opts ...Option) (*Dense, error) {
	if !s.Valid() {
		return nil, matrixErrorf(opMul, fmt.Errorf("%v: %w", s, ErrUnknownStrategy))
	}
	res, err := mulTable[s](a, b, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}

// CrossCheck multiplies a and b with every strategy and verifies that Tiled
// and BLAS agree with Naive within the tolerance from WithTolerance
// (DefaultTolerance), applied both absolutely and relatively.
//
// On success the Naive product is returned and the other products are freed.
// On failure every product is freed and the error names the strategy that
// disagreed (ErrStrategyMismatch).
func CrossCheck(a, b *Dense, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	ref, err := mulNaive(a, b, o)
	if err != nil {
		return nil, matrixErrorf(opCrossCheck, err)
	}
	for _, s := range []Strategy{Tiled, BLAS} {
		got, err := mulTable[s](a, b, o)
		if err != nil {
			_ = ref.Free()
			return nil, matrixErrorf(opCrossCheck, err)
		}
		ok := AllClose(got, ref, o.tol, o.tol)
		_ = got.Free()
		if !ok {
			_ = ref.Free()
			return nil, matrixErrorf(opCrossCheck, fmt.Errorf("%v vs %v: %w", s, Naive, ErrStrategyMismatch))
		}
	}

	return ref, nil
}
