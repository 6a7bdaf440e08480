package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katalvlaran/densemul/alloc"
)

// TileTiming is the best duration measured for one tile size.
type TileTiming struct {
	Tile     int
	Duration time.Duration
}

// Report is the outcome of Run.
type Report struct {
	Size           int
	Repeat         int
	Naive          time.Duration
	Tiles          []TileTiming // in ascending tile order
	BLAS           time.Duration
	MinTileSpeedup float64
	Memory         alloc.Stats // tracker delta over the whole run
	CPU            string
}

// BestTile returns the fastest tile timing; ties keep the smaller tile.
func (r *Report) BestTile() TileTiming {
	return lo.MinBy(r.Tiles, func(a, b TileTiming) bool { return a.Duration < b.Duration })
}

// TileSpeedup is naive time divided by the best tiled time.
func (r *Report) TileSpeedup() float64 { return ratio(r.Naive, r.BestTile().Duration) }

// BLASSpeedup is naive time divided by BLAS time.
func (r *Report) BLASSpeedup() float64 { return ratio(r.Naive, r.BLAS) }

// TileFasterPercent is how much less time the best tile took than naive, in percent.
func (r *Report) TileFasterPercent() float64 {
	if r.Naive <= 0 {
		return 0
	}

	return (1 - float64(r.BestTile().Duration)/float64(r.Naive)) * 100
}

// TileFastEnough reports whether the best tile reached MinTileSpeedup.
func (r *Report) TileFastEnough() bool { return r.TileSpeedup() >= r.MinTileSpeedup }

func ratio(num, den time.Duration) float64 {
	if den <= 0 {
		return 0
	}

	return float64(num) / float64(den)
}

// WriteTo renders the plain-text performance report.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	p := message.NewPrinter(language.English)
	best := r.BestTile()

	fmt.Fprintf(&buf, "Matrix multiplication performance (%dx%d):\n", r.Size, r.Size)
	p.Fprintf(&buf, "Best of %d runs per strategy\n", r.Repeat)
	if r.CPU != "" {
		fmt.Fprintf(&buf, "CPU: %s\n", r.CPU)
	}
	fmt.Fprintf(&buf, "Naive implementation: %.6f seconds\n", r.Naive.Seconds())
	for _, t := range r.Tiles {
		fmt.Fprintf(&buf, "Tile size %d: %.6f seconds\n", t.Tile, t.Duration.Seconds())
	}
	fmt.Fprintf(&buf, "Tiling implementation (tile size %d): %.6f seconds\n", best.Tile, best.Duration.Seconds())
	fmt.Fprintf(&buf, "BLAS implementation: %.6f seconds\n", r.BLAS.Seconds())
	fmt.Fprintf(&buf, "Tiling speedup over naive: %.2fx\n", r.TileSpeedup())
	fmt.Fprintf(&buf, "BLAS speedup over naive: %.2fx\n", r.BLASSpeedup())
	fmt.Fprintf(&buf, "Tiling is %.2f%% faster than naive\n", r.TileFasterPercent())
	fmt.Fprintf(&buf, "Best tile size: %d\n", best.Tile)
	p.Fprintf(&buf, "Memory: %d bytes allocated, %d bytes deallocated, %d bytes in use\n",
		r.Memory.Allocated, r.Memory.Deallocated, r.Memory.InUse)
	if !r.TileFastEnough() {
		fmt.Fprintf(&buf, "WARNING: tiling speedup %.2fx is below the required %.2fx\n", r.TileSpeedup(), r.MinTileSpeedup)
	}

	return buf.WriteTo(w)
}

// WriteFile writes the report to path, replacing any existing file.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bench: create report: %w", err)
	}
	if _, err = r.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("bench: write report: %w", err)
	}

	return f.Close()
}
