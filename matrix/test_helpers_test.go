// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for the strategy tests.
//   • Route every allocation to an isolated tracker so leak checks never see
//     allocations from other tests.

package matrix_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemul/alloc"
	"github.com/katalvlaran/densemul/matrix"
)

// tol is the acceptance tolerance between strategies.
const tol = matrix.DefaultTolerance

// approx compares float64 values within tol, absolutely or relatively.
var approx = cmpopts.EquateApprox(tol, tol)

// mustDense allocates an r×c *Dense on tr or fails the test.
func mustDense(tb testing.TB, tr *alloc.Tracker, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c, matrix.WithTracker(tr))
	require.NoError(tb, err)

	return m
}

// mustFrom builds a matrix from a row literal on tr or fails the test.
func mustFrom(tb testing.TB, tr *alloc.Tracker, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(rows, matrix.WithTracker(tr))
	require.NoError(tb, err)

	return m
}

// mustRandom allocates a seeded random r×c matrix on tr or fails the test.
func mustRandom(tb testing.TB, tr *alloc.Tracker, r, c int, seed int64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.Random(r, c, seed, matrix.WithTracker(tr))
	require.NoError(tb, err)

	return m
}

// fillSequential writes value[i][j] = i*cols + j + 1, the benchmark fill.
func fillSequential(tb testing.TB, m *matrix.Dense) {
	tb.Helper()
	cols := m.Cols()
	require.NoError(tb, m.Fill(func(i, j int) float64 { return float64(i*cols + j + 1) }))
}

// mustFree frees m or fails the test.
func mustFree(tb testing.TB, ms ...*matrix.Dense) {
	tb.Helper()
	for _, m := range ms {
		require.NoError(tb, m.Free())
	}
}

// requireClose fails unless got matches want within tol, printing a diff.
func requireClose(tb testing.TB, want, got *matrix.Dense) {
	tb.Helper()
	require.Equal(tb, want.Rows(), got.Rows(), "rows")
	require.Equal(tb, want.Cols(), got.Cols(), "cols")
	if diff := cmp.Diff(want.ToRows(), got.ToRows(), approx); diff != "" {
		tb.Fatalf("product mismatch (-want +got):\n%s", diff)
	}
}

// requireBalanced fails unless tr has no bytes in use.
func requireBalanced(tb testing.TB, tr *alloc.Tracker) {
	tb.Helper()
	s := tr.Snapshot()
	require.Zero(tb, s.InUse, "leaked bytes: %s", s)
	require.Equal(tb, s.Allocated, s.Deallocated)
}
