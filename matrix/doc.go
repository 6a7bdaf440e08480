// Package matrix provides a dense row-major float64 matrix with
// interchangeable multiplication strategies and tracked allocation.
//
// The matrix package provides:
//
//   - Dense with bounds-checked At/Set, exact Equal, and an explicit Free that
//     releases the backing store exactly once.
//   - MulNaive (i-j-k triple loop), MulTiled (cache blocking with a caller
//     tile size) and MulBLAS (vendor Dgemm via gonum's blas64), all computing
//     the same product; Mul selects one by Strategy.
//   - AllClose, MaxAbsDiff and CrossCheck for comparing strategies within a
//     tolerance (DefaultTolerance = 1e-6).
//
// Every backing store, including product results, is registered with an
// alloc.Tracker: the one given by WithTracker, else the left operand's, else
// alloc.Default(). After every matrix created during a computation has been
// freed, the tracker's InUse is back at its starting value.
//
// A Dense is not safe for concurrent mutation; distinct matrices may be used
// from different goroutines, and trackers are safe for concurrent use.
//
// See the examples in this package for usage patterns.
package matrix
