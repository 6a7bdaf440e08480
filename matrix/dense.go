// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major), safe accessors and lifecycle.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Register every backing store with an alloc.Tracker on creation and
//     unregister it exactly once on Free.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Free: O(1).

package matrix

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/katalvlaran/densemul/alloc"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"   // method tag used in error wrappers
	ctxSet  = "Set"  // method tag used in error wrappers
	ctxFree = "Free" // method tag used in error wrappers
)

// maxElements bounds rows*cols so the backing store size in bytes fits in an int.
const maxElements = math.MaxInt / alloc.Float64Size

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//   - Stable, human-friendly messages; preserves sentinel via %w.
//
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
//   - r,c hold dimensions (both ≥ 1 for a live matrix).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - tracker observes the allocation and release of data.
//   - released is set by Free; every later access fails with ErrReleased.
//
// A Dense is not safe for concurrent mutation.
type Dense struct {
	r, c     int            // row and column counts
	data     []float64      // contiguous row-major storage (len == r*c while live)
	tracker  *alloc.Tracker // accounting sink for data
	released bool           // Free has run
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix and registers its backing store.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//     rows*cols*8 must fit in an int; else ErrTooLarge.
//   - Stage 2: allocate zero-filled buffer.
//   - Stage 3: register rows*cols*8 bytes with the tracker (WithTracker, or
//     alloc.Default()).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation); nothing is registered.
//   - ErrTooLarge (wraps ErrInvalidDimensions) when the size overflows.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	return newDense(rows, cols, o.trackerOr(nil))
}

// newDense is the single allocation path shared by constructors and products.
func newDense(rows, cols int, t *alloc.Tracker) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewDense, ErrInvalidDimensions)
	}
	if rows > maxElements/cols {
		return nil, matrixErrorf(opNewDense, fmt.Errorf("%dx%d: %w", rows, cols, ErrTooLarge))
	}
	// make() zero-fills deterministically.
	buf := make([]float64, rows*cols)
	t.Alloc(alloc.BytesFor(rows, cols))

	return &Dense{r: rows, c: cols, data: buf, tracker: t}, nil
}

// NewDenseFrom builds a matrix from a rectangular row literal.
//
// Errors:
//   - ErrInvalidDimensions if rows is empty or its first row is empty.
//   - ErrDimensionMismatch if any row length differs from the first.
//
// Complexity: O(r*c).
func NewDenseFrom(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(opNewDenseFrom, ErrInvalidDimensions)
	}
	cols := len(rows[0])
	for i := range rows {
		if len(rows[i]) != cols {
			return nil, matrixErrorf(opNewDenseFrom, fmt.Errorf("row %d: %w", i, ErrDimensionMismatch))
		}
	}

	m, err := NewDense(len(rows), cols, opts...)
	if err != nil {
		return nil, matrixErrorf(opNewDenseFrom, err)
	}
	for i := range rows {
		copy(m.data[i*cols:(i+1)*cols], rows[i])
	}

	return m, nil
}

// Random creates a rows×cols matrix of uniform values in [0,1) drawn from a
// source seeded with seed. Equal seeds give equal matrices.
func Random(rows, cols int, seed int64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, matrixErrorf(opRandom, err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.data {
		m.data[i] = rng.Float64()
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// Bytes returns the size of the backing store registered with the tracker.
func (m *Dense) Bytes() uint64 { return alloc.BytesFor(m.r, m.c) }

// Tracker returns the tracker that accounts for this matrix.
func (m *Dense) Tracker() *alloc.Tracker { return m.tracker }

// Released reports whether Free has been called.
func (m *Dense) Released() bool { return m.released }

// indexOf computes the flat index for (row, col).
// Stage 1 (Validate): liveness, then 0 ≤ row < r and 0 ≤ col < c.
// Stage 2 (Execute): compute and return linear index.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if m.released {
		return 0, denseErrorf(method, row, col, ErrReleased)
	}
	if row < 0 || row >= m.r {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}
	if col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Returns ErrOutOfRange for invalid indices and ErrReleased after Free.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Returns ErrOutOfRange for invalid indices and ErrReleased after Free.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Free releases the backing store and unregisters it from the tracker.
//
// The first call returns nil. Any later call returns ErrReleased and leaves
// the tracker untouched, so a double free can never unbalance the counters.
// Complexity: O(1).
func (m *Dense) Free() error {
	if m == nil {
		return matrixErrorf(ctxFree, ErrNilMatrix)
	}
	if m.released {
		return denseErrorf(ctxFree, m.r, m.c, ErrReleased)
	}
	m.released = true
	m.data = nil
	m.tracker.Free(alloc.BytesFor(m.r, m.c))

	return nil
}

// Fill assigns fn(i, j) to every element in row-major order.
// Complexity: O(r*c) calls to fn.
func (m *Dense) Fill(fn func(i, j int) float64) error {
	if err := ValidateLive(m); err != nil {
		return matrixErrorf(opFill, err)
	}
	var i, j, off int
	for i = 0; i < m.r; i++ {
		off = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[off+j] = fn(i, j)
		}
	}

	return nil
}

// Clone returns a deep copy registered with the tracker from opts, or with
// m's own tracker when none is given.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone(opts ...Option) (*Dense, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opClone, err)
	}
	o := gatherOptions(opts...)
	out, err := newDense(m.r, m.c, o.trackerOr(m.tracker))
	if err != nil {
		return nil, matrixErrorf(opClone, err)
	}
	copy(out.data, m.data)

	return out, nil
}

// RowMajor returns a copy of the elements in row-major order.
func (m *Dense) RowMajor() []float64 {
	if m.released {
		return nil
	}
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// ToRows returns a copy of the elements as a slice of rows.
func (m *Dense) ToRows() [][]float64 {
	if m.released {
		return nil
	}
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}

	return out
}

// String implements fmt.Stringer: one "[a, b, ...]" line per row.
// Complexity: O(r*c).
func (m *Dense) String() string {
	if m.released {
		return "<released>"
	}
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
