// Package bench times the multiplication strategies against each other and
// renders the plain-text performance report.
//
// A run builds two size×size operands, multiplies them with Naive, with
// Tiled for every configured tile size, and with BLAS, keeping the best of
// Repeat timings per strategy. Every product is cross-checked against the
// naive one within Config.Tolerance, and every matrix is allocated on an
// isolated alloc.Tracker that must be back to zero bytes in use when the run
// ends.
//
// Configuration comes from DefaultConfig, a YAML file (LoadConfig), or both:
//
//	size: 1000
//	tile_sizes: [16, 32, 64, 128]
//	repeat: 3
//	fill: sequential
//	output: performance.txt
//	min_tile_speedup: 1.25
package bench
