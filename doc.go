// Package densemul is a small dense linear-algebra kit built around one
// question: how much do loop order, cache blocking and a vendor BLAS buy for
// C = A × B on float64 matrices?
//
// What is inside?
//
//	A pure-Go module that brings together:
//		• Dense matrices: row-major float64 storage, bounds-checked access, explicit Free
//		• Three strategies: naive i-j-k, cache-tiled, BLAS Dgemm (gonum)
//		• Memory accounting: every backing store is counted by an alloc.Tracker
//		• Benchmarking: a YAML-configurable runner and the matbench CLI
//
// Under the hood, everything is organized under these packages:
//
//	alloc/        - Tracker: allocated, deallocated and in-use byte counters
//	matrix/       - Dense, Mul{Naive,Tiled,BLAS}, Mul, CrossCheck, AllClose
//	bench/        - Config, Run and the plain-text performance Report
//	cmd/matbench/ - command-line front end over bench
//
// Quick start:
//
//	a, _ := matrix.NewDenseFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
//	b, _ := matrix.NewDenseFrom([][]float64{{7, 8}, {9, 10}, {11, 12}})
//	c, _ := matrix.Mul(matrix.Tiled, a, b, matrix.WithTileSize(32))
//	fmt.Print(c) // [58, 64]
//	             // [139, 154]
//	_ = c.Free()
//
// Install:
//
//	go get github.com/katalvlaran/densemul
//	go install github.com/katalvlaran/densemul/cmd/matbench@latest
package densemul
