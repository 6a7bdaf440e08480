// SPDX-License-Identifier: MIT

// Command matbench times the naive, tiled and BLAS dense multiplications on
// square matrices and writes a plain-text performance report.
//
//	matbench run --size 512 --tiles 16,32,64 --output performance.txt
//	matbench run --config bench.yaml --strict
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/densemul/bench"
)

// errTooSlow is returned in strict mode when tiling misses the speedup gate.
var errTooSlow = errors.New("matbench: tiling below required speedup")

type runFlags struct {
	config   string
	size     int
	tiles    []int
	repeat   int
	seed     int64
	fill     string
	output   string
	logLevel string
	strict   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "matbench",
		Short:        "Benchmark dense matrix multiplication strategies",
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newRunCmd(&runFlags{}))

	return root
}

func newRunCmd(f *runFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.IntVarP(&f.size, "size", "n", bench.DefaultSize, "matrix edge length")
	fs.IntSliceVar(&f.tiles, "tiles", slices.Clone(bench.DefaultTileSizes), "tile sizes to try")
	fs.IntVarP(&f.repeat, "repeat", "r", bench.DefaultRepeat, "runs per strategy, best is kept")
	fs.Int64Var(&f.seed, "seed", 0, "seed for random fill")
	fs.StringVar(&f.fill, "fill", string(bench.FillSequential), "operand fill: sequential or random")
	fs.StringVarP(&f.output, "output", "o", bench.DefaultOutput, "report file")
	fs.StringVar(&f.logLevel, "log-level", zerolog.LevelInfoValue, "trace, debug, info, warn or error")
	fs.BoolVar(&f.strict, "strict", false, "fail when tiling misses the configured speedup")

	return cmd
}

// resolveConfig loads the config file, if any, and applies explicitly set flags on top.
func resolveConfig(fs *pflag.FlagSet, f *runFlags) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = bench.LoadConfig(f.config); err != nil {
			return bench.Config{}, err
		}
	}

	fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "size":
			cfg.Size = f.size
		case "tiles":
			cfg.TileSizes = f.tiles
		case "repeat":
			cfg.Repeat = f.repeat
		case "seed":
			cfg.Seed = f.seed
		case "fill":
			cfg.Fill = bench.Fill(f.fill)
		case "output":
			cfg.Output = f.output
		}
	})
	if err := cfg.Validate(); err != nil {
		return bench.Config{}, err
	}

	return cfg, nil
}

func runBench(cmd *cobra.Command, f *runFlags) error {
	level, err := zerolog.ParseLevel(f.logLevel)
	if err != nil {
		return fmt.Errorf("matbench: --log-level: %w", err)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).With().Timestamp().Logger()

	cfg, err := resolveConfig(cmd.Flags(), f)
	if err != nil {
		return err
	}

	rep, err := bench.Run(cmd.Context(), cfg, bench.WithLogger(log))
	if err != nil {
		log.Error().Err(err).Msg("benchmark failed")
		return err
	}
	if err = rep.WriteFile(cfg.Output); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Output).Msg("report written")

	best := rep.BestTile()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "naive %.6fs, tile %d %.6fs (%.2fx), blas %.6fs (%.2fx)\n",
		rep.Naive.Seconds(), best.Tile, best.Duration.Seconds(), rep.TileSpeedup(),
		rep.BLAS.Seconds(), rep.BLASSpeedup())

	if !rep.TileFastEnough() {
		log.Warn().
			Float64("speedup", rep.TileSpeedup()).
			Float64("required", rep.MinTileSpeedup).
			Msg("tiling below required speedup")
		if f.strict {
			return fmt.Errorf("%w: %.2fx < %.2fx", errTooSlow, rep.TileSpeedup(), rep.MinTileSpeedup)
		}
	}

	return nil
}
