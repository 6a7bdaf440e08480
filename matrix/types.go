// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the multiplication strategies.
// This file contains ONLY the Strategy enum and its text forms; errors and
// options live in errors.go and options.go.
package matrix

import (
	"fmt"
	"strings"
)

// Strategy selects one of the interchangeable product producers.
// All strategies compute the same mathematical product; they differ only in
// loop structure and therefore in speed and summation order.
type Strategy int

const (
	// Naive is the i-j-k triple loop; the correctness baseline.
	Naive Strategy = iota
	// Tiled partitions i/j/k into square blocks of the configured tile size.
	Tiled
	// BLAS delegates to a vendor-optimised Dgemm.
	BLAS

	strategyCount // sentinel, keep last
)

var strategyNames = [strategyCount]string{
	Naive: "naive",
	Tiled: "tile",
	BLAS:  "blas",
}

// Strategies lists every known strategy in dispatch order.
func Strategies() []Strategy { return []Strategy{Naive, Tiled, BLAS} }

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if s < 0 || s >= strategyCount {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}

	return strategyNames[s]
}

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool { return s >= 0 && s < strategyCount }

// ParseStrategy maps a case-insensitive name to a Strategy.
// "tiled" and "mkl" are accepted as aliases of "tile" and "blas".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "naive":
		return Naive, nil
	case "tile", "tiled":
		return Tiled, nil
	case "blas", "mkl", "vendor":
		return BLAS, nil
	}

	return 0, fmt.Errorf("ParseStrategy(%q): %w", name, ErrUnknownStrategy)
}
