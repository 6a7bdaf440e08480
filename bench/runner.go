package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/densemul/alloc"
	"github.com/katalvlaran/densemul/matrix"
)

// Option configures Run.
type Option func(*runner)

// WithLogger sets the logger for progress messages (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(r *runner) { r.log = l }
}

// WithTracker runs the benchmark on t instead of a fresh tracker. The leak
// check is relative to t's state when Run starts.
func WithTracker(t *alloc.Tracker) Option {
	return func(r *runner) {
		if t != nil {
			r.tracker = t
		}
	}
}

// WithMatrixOptions forwards options to every product, e.g. matrix.WithBLAS.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(r *runner) { r.mulOpts = append(r.mulOpts, opts...) }
}

type runner struct {
	cfg     Config
	log     zerolog.Logger
	tracker *alloc.Tracker
	mulOpts []matrix.Option
}

type mulCall func() (*matrix.Dense, error)

// Run executes the benchmark described by cfg.
//
// The context is checked before every timed product; cancellation aborts the
// run with ctx.Err() after freeing everything allocated so far.
//
// Errors:
//   - ErrInvalidConfig from cfg.Validate.
//   - ErrMismatch when a strategy disagrees with Naive.
//   - ErrLeak when the tracker is not balanced at the end.
//   - matrix errors from allocation or multiplication.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &runner{
		cfg:     cfg,
		log:     zerolog.Nop(),
		tracker: alloc.New(),
	}
	for _, opt := range opts {
		opt(r)
	}

	base := r.tracker.Snapshot()
	rep, err := r.run(ctx)
	used := r.tracker.Snapshot().Sub(base)
	if err != nil {
		return nil, err
	}
	if used.InUse != 0 {
		return nil, fmt.Errorf("%w: %s", ErrLeak, used)
	}
	rep.Memory = used
	r.log.Info().
		Uint64("allocated", used.Allocated).
		Uint64("deallocated", used.Deallocated).
		Msg("tracker balanced")

	return rep, nil
}

func (r *runner) run(ctx context.Context) (*Report, error) {
	n := r.cfg.Size
	a, b, err := r.operands()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = a.Free()
		_ = b.Free()
	}()
	r.log.Info().Int("size", n).Str("fill", string(r.cfg.Fill)).Int("repeat", r.cfg.Repeat).Msg("operands ready")

	rep := &Report{
		Size:           n,
		Repeat:         r.cfg.Repeat,
		MinTileSpeedup: r.cfg.MinTileSpeedup,
		CPU:            describeCPU(),
	}

	opts := append([]matrix.Option{matrix.WithTracker(r.tracker)}, r.mulOpts...)

	var ref *matrix.Dense
	rep.Naive, ref, err = r.measure(ctx, matrix.Naive.String(), func() (*matrix.Dense, error) {
		return matrix.MulNaive(a, b, opts...)
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = ref.Free() }()

	for _, tile := range r.cfg.TileSizes {
		d, err := r.measureChecked(ctx, fmt.Sprintf("%v/%d", matrix.Tiled, tile), ref, func() (*matrix.Dense, error) {
			return matrix.MulTiled(a, b, tile, opts...)
		})
		if err != nil {
			return nil, err
		}
		rep.Tiles = append(rep.Tiles, TileTiming{Tile: tile, Duration: d})
	}

	rep.BLAS, err = r.measureChecked(ctx, matrix.BLAS.String(), ref, func() (*matrix.Dense, error) {
		return matrix.MulBLAS(a, b, opts...)
	})
	if err != nil {
		return nil, err
	}

	return rep, nil
}

// operands allocates and fills A and B.
func (r *runner) operands() (*matrix.Dense, *matrix.Dense, error) {
	n := r.cfg.Size
	if r.cfg.Fill == FillRandom {
		a, err := matrix.Random(n, n, r.cfg.Seed, matrix.WithTracker(r.tracker))
		if err != nil {
			return nil, nil, err
		}
		b, err := matrix.Random(n, n, r.cfg.Seed+1, matrix.WithTracker(r.tracker))
		if err != nil {
			_ = a.Free()
			return nil, nil, err
		}
		return a, b, nil
	}

	seq := func(i, j int) float64 { return float64(i*n + j + 1) }
	a, err := matrix.NewDense(n, n, matrix.WithTracker(r.tracker))
	if err != nil {
		return nil, nil, err
	}
	b, err := matrix.NewDense(n, n, matrix.WithTracker(r.tracker))
	if err != nil {
		_ = a.Free()
		return nil, nil, err
	}
	if err = fillAll(seq, a, b); err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

// fillAll fills every matrix with fn. On failure every matrix is freed.
func fillAll(fn func(i, j int) float64, ms ...*matrix.Dense) error {
	for _, m := range ms {
		if err := m.Fill(fn); err != nil {
			for _, x := range ms {
				_ = x.Free()
			}
			return fmt.Errorf("bench: fill operands: %w", err)
		}
	}

	return nil
}

// measure runs mul cfg.Repeat times and returns the best duration together
// with the product of the last run; earlier products are freed.
func (r *runner) measure(ctx context.Context, name string, mul mulCall) (time.Duration, *matrix.Dense, error) {
	var (
		best time.Duration
		last *matrix.Dense
	)
	for i := 0; i < r.cfg.Repeat; i++ {
		if err := ctx.Err(); err != nil {
			if last != nil {
				_ = last.Free()
			}
			return 0, nil, err
		}
		start := time.Now()
		c, err := mul()
		elapsed := time.Since(start)
		if err != nil {
			if last != nil {
				_ = last.Free()
			}
			return 0, nil, fmt.Errorf("bench: %s: %w", name, err)
		}
		if last != nil {
			_ = last.Free()
		}
		last = c
		if i == 0 || elapsed < best {
			best = elapsed
		}
		r.log.Debug().Str("strategy", name).Int("run", i+1).Dur("elapsed", elapsed).Send()
	}
	r.log.Info().Str("strategy", name).Dur("best", best).Msg("measured")

	return best, last, nil
}

// measureChecked is measure followed by a comparison with ref; the product
// is always freed.
func (r *runner) measureChecked(ctx context.Context, name string, ref *matrix.Dense, mul mulCall) (time.Duration, error) {
	d, c, err := r.measure(ctx, name, mul)
	if err != nil {
		return 0, err
	}
	defer func() { _ = c.Free() }()

	if !matrix.AllClose(c, ref, r.cfg.Tolerance, r.cfg.Tolerance) {
		diff, _ := matrix.MaxAbsDiff(c, ref)
		r.log.Error().Str("strategy", name).Float64("max_abs_diff", diff).Msg("product differs from naive")
		return 0, fmt.Errorf("%w: %s differs from %v by %g", ErrMismatch, name, matrix.Naive, diff)
	}

	return d, nil
}
