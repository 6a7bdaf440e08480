package matrix_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/katalvlaran/densemul/alloc"
	"github.com/katalvlaran/densemul/matrix"
)

// MulSuite exercises every multiplication strategy against one isolated
// tracker and checks after each test that nothing leaked.
type MulSuite struct {
	suite.Suite
	tr *alloc.Tracker
}

func (s *MulSuite) SetupTest() { s.tr = alloc.New() }

func (s *MulSuite) TearDownTest() { requireBalanced(s.T(), s.tr) }

// all runs every strategy with the given tile size and returns the products.
func (s *MulSuite) all(a, b *matrix.Dense, tile int) map[matrix.Strategy]*matrix.Dense {
	out := make(map[matrix.Strategy]*matrix.Dense, 3)
	for _, st := range matrix.Strategies() {
		c, err := matrix.Mul(st, a, b, matrix.WithTileSize(tile))
		require.NoError(s.T(), err, "strategy %v", st)
		out[st] = c
	}

	return out
}

func (s *MulSuite) freeAll(ms map[matrix.Strategy]*matrix.Dense) {
	for _, m := range ms {
		mustFree(s.T(), m)
	}
}

// TestKnownProduct checks [[1,2,3],[4,5,6]] × [[7,8],[9,10],[11,12]].
func (s *MulSuite) TestKnownProduct() {
	a := mustFrom(s.T(), s.tr, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustFrom(s.T(), s.tr, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	want := mustFrom(s.T(), s.tr, [][]float64{{58, 64}, {139, 154}})

	for _, tile := range []int{1, 2, 32} {
		got := s.all(a, b, tile)
		require.True(s.T(), want.Equal(got[matrix.Naive]), "naive:\n%s", got[matrix.Naive])
		require.True(s.T(), want.Equal(got[matrix.Tiled]), "tile=%d:\n%s", tile, got[matrix.Tiled])
		requireClose(s.T(), want, got[matrix.BLAS])
		s.freeAll(got)
	}
	mustFree(s.T(), a, b, want)
}

// TestResultShapeAndAccounting checks C is n×p and tracked on a's tracker.
func (s *MulSuite) TestResultShapeAndAccounting() {
	a := mustRandom(s.T(), s.tr, 5, 7, 1)
	b := mustRandom(s.T(), s.tr, 7, 3, 2)
	base := s.tr.Snapshot()

	got := s.all(a, b, 4)
	d := s.tr.Snapshot().Sub(base)
	require.Equal(s.T(), 3*alloc.BytesFor(5, 3), d.Allocated)
	for st, c := range got {
		require.Equal(s.T(), 5, c.Rows(), "%v", st)
		require.Equal(s.T(), 3, c.Cols(), "%v", st)
		require.Same(s.T(), s.tr, c.Tracker(), "%v", st)
	}
	s.freeAll(got)
	mustFree(s.T(), a, b)
}

// TestResultOnInjectedTracker routes the product to a different tracker.
func (s *MulSuite) TestResultOnInjectedTracker() {
	a := mustRandom(s.T(), s.tr, 3, 3, 1)
	b := mustRandom(s.T(), s.tr, 3, 3, 2)
	other := alloc.New()

	c, err := matrix.MulNaive(a, b, matrix.WithTracker(other))
	require.NoError(s.T(), err)
	require.Equal(s.T(), c.Bytes(), other.InUse())
	mustFree(s.T(), c, a, b)
	requireBalanced(s.T(), other)
}

// TestTileSizes compares Tiled and BLAS to Naive for tiles that divide the
// dimensions, tiles that do not, tile 1, and tiles larger than the matrix.
func (s *MulSuite) TestTileSizes() {
	a := mustRandom(s.T(), s.tr, 37, 23, 101)
	b := mustRandom(s.T(), s.tr, 23, 41, 202)
	ref, err := matrix.MulNaive(a, b)
	require.NoError(s.T(), err)

	for _, tile := range []int{1, 2, 3, 5, 7, 16, 23, 32, 37, 41, 64, 128, 1000} {
		s.Run(fmt.Sprintf("tile=%d", tile), func() {
			got, err := matrix.MulTiled(a, b, tile)
			require.NoError(s.T(), err)
			requireClose(s.T(), ref, got)
			mustFree(s.T(), got)
		})
	}

	got, err := matrix.MulBLAS(a, b)
	require.NoError(s.T(), err)
	requireClose(s.T(), ref, got)
	mustFree(s.T(), got, ref, a, b)
}

// TestZeroOperand checks that a zero factor yields an n×p zero matrix.
func (s *MulSuite) TestZeroOperand() {
	a := mustRandom(s.T(), s.tr, 4, 6, 9)
	z := mustDense(s.T(), s.tr, 6, 5)
	want := mustDense(s.T(), s.tr, 4, 5)

	got := s.all(a, z, 3)
	for st, c := range got {
		require.True(s.T(), want.Equal(c), "%v:\n%s", st, c)
	}
	s.freeAll(got)
	mustFree(s.T(), a, z, want)
}

// TestVectorShapes covers 1×m × m×1 and m×1 × 1×p.
func (s *MulSuite) TestVectorShapes() {
	row := mustFrom(s.T(), s.tr, [][]float64{{1, 2, 3}})
	col := mustFrom(s.T(), s.tr, [][]float64{{4}, {5}, {6}})

	inner := s.all(row, col, 2)
	for st, c := range inner {
		v, err := c.At(0, 0)
		require.NoError(s.T(), err)
		require.InDelta(s.T(), 32.0, v, tol, "%v", st)
	}
	s.freeAll(inner)

	outer := s.all(col, row, 2)
	for st, c := range outer {
		require.Equal(s.T(), 3, c.Rows(), "%v", st)
		v, err := c.At(2, 1)
		require.NoError(s.T(), err)
		require.InDelta(s.T(), 12.0, v, tol, "%v", st)
	}
	s.freeAll(outer)
	mustFree(s.T(), row, col)
}

// TestDimensionMismatch ensures every strategy rejects a.Cols != b.Rows
// without allocating a result.
func (s *MulSuite) TestDimensionMismatch() {
	a := mustDense(s.T(), s.tr, 2, 3)
	b := mustDense(s.T(), s.tr, 2, 3)
	base := s.tr.Snapshot()

	_, err := matrix.MulNaive(a, b)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulTiled(a, b, 16)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)
	_, err = matrix.MulBLAS(a, b)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(matrix.Tiled, a, b)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)

	require.Equal(s.T(), base, s.tr.Snapshot())
	mustFree(s.T(), a, b)
}

// TestInvalidTileSize ensures tile <= 0 is an invalid-dimension error.
func (s *MulSuite) TestInvalidTileSize() {
	a := mustDense(s.T(), s.tr, 2, 2)
	b := mustDense(s.T(), s.tr, 2, 2)
	for _, tile := range []int{0, -1, -64} {
		_, err := matrix.MulTiled(a, b, tile)
		require.ErrorIs(s.T(), err, matrix.ErrInvalidTileSize)
		require.ErrorIs(s.T(), err, matrix.ErrInvalidDimensions)
	}

	// dimension mismatch takes priority over the tile check
	c := mustDense(s.T(), s.tr, 3, 2)
	_, err := matrix.MulTiled(a, c, 0)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)
	mustFree(s.T(), a, b, c)
}

// TestNilAndReleasedOperands checks the liveness guards.
func (s *MulSuite) TestNilAndReleasedOperands() {
	a := mustDense(s.T(), s.tr, 2, 2)
	dead := mustDense(s.T(), s.tr, 2, 2)
	mustFree(s.T(), dead)

	for _, st := range matrix.Strategies() {
		_, err := matrix.Mul(st, nil, a)
		require.ErrorIs(s.T(), err, matrix.ErrNilMatrix, "%v", st)
		_, err = matrix.Mul(st, a, nil)
		require.ErrorIs(s.T(), err, matrix.ErrNilMatrix, "%v", st)
		_, err = matrix.Mul(st, dead, a)
		require.ErrorIs(s.T(), err, matrix.ErrReleased, "%v", st)
		_, err = matrix.Mul(st, a, dead)
		require.ErrorIs(s.T(), err, matrix.ErrReleased, "%v", st)
	}
	mustFree(s.T(), a)
}

// TestUnknownStrategy ensures Mul rejects values outside the enum.
func (s *MulSuite) TestUnknownStrategy() {
	a := mustDense(s.T(), s.tr, 1, 1)
	_, err := matrix.Mul(matrix.Strategy(42), a, a)
	require.ErrorIs(s.T(), err, matrix.ErrUnknownStrategy)
	_, err = matrix.Mul(matrix.Strategy(-1), a, a)
	require.ErrorIs(s.T(), err, matrix.ErrUnknownStrategy)
	mustFree(s.T(), a)
}

// TestOperandsUnchanged ensures no strategy mutates its inputs.
func (s *MulSuite) TestOperandsUnchanged() {
	a := mustRandom(s.T(), s.tr, 6, 6, 3)
	b := mustRandom(s.T(), s.tr, 6, 6, 4)
	a0, err := a.Clone()
	require.NoError(s.T(), err)
	b0, err := b.Clone()
	require.NoError(s.T(), err)

	got := s.all(a, b, 4)
	require.True(s.T(), a.Equal(a0))
	require.True(s.T(), b.Equal(b0))
	s.freeAll(got)
	mustFree(s.T(), a, b, a0, b0)
}

// TestExplicitBLASImplementation routes MulBLAS through gonum's pure Go
// kernels explicitly.
func (s *MulSuite) TestExplicitBLASImplementation() {
	a := mustRandom(s.T(), s.tr, 9, 4, 5)
	b := mustRandom(s.T(), s.tr, 4, 8, 6)
	ref, err := matrix.MulNaive(a, b)
	require.NoError(s.T(), err)

	got, err := matrix.MulBLAS(a, b, matrix.WithBLAS(gonum.Implementation{}))
	require.NoError(s.T(), err)
	requireClose(s.T(), ref, got)
	mustFree(s.T(), got, ref, a, b)
}

// TestCrossCheck returns the naive product and frees the rest.
func (s *MulSuite) TestCrossCheck() {
	a := mustRandom(s.T(), s.tr, 20, 30, 7)
	b := mustRandom(s.T(), s.tr, 30, 10, 8)

	ref, err := matrix.CrossCheck(a, b, matrix.WithTileSize(7))
	require.NoError(s.T(), err)
	require.Equal(s.T(), ref.Bytes()+a.Bytes()+b.Bytes(), s.tr.InUse())

	want, err := matrix.MulNaive(a, b)
	require.NoError(s.T(), err)
	require.True(s.T(), want.Equal(ref))
	mustFree(s.T(), want, ref)

	_, err = matrix.CrossCheck(a, a)
	require.ErrorIs(s.T(), err, matrix.ErrDimensionMismatch)
	mustFree(s.T(), a, b)
}

// TestSequentialFill1000 reproduces the benchmark scenario: 1000×1000
// operands filled with i*size+j+1, tile 32, all strategies agree.
func (s *MulSuite) TestSequentialFill1000() {
	if testing.Short() {
		s.T().Skip("1000×1000 products skipped in -short mode")
	}
	const size = 1000
	a := mustDense(s.T(), s.tr, size, size)
	b := mustDense(s.T(), s.tr, size, size)
	fillSequential(s.T(), a)
	fillSequential(s.T(), b)

	got := s.all(a, b, 32)
	requireClose(s.T(), got[matrix.Naive], got[matrix.Tiled])
	requireClose(s.T(), got[matrix.Naive], got[matrix.BLAS])
	s.freeAll(got)
	mustFree(s.T(), a, b)
}

// Entry point for running the suite.
func TestMulSuite(t *testing.T) {
	suite.Run(t, new(MulSuite))
}
