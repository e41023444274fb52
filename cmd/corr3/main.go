// Command corr3 computes the equilateral three-point correlation
// function: for each bin's two-point table, it enumerates equilateral
// triangles with that table's separation as every side length, then
// averages the map's triple product over the resulting list. Grounded on
// the source repository's calculate_threept_correlation_function-style
// tools built on Pixel_Triangles.h's equilateral enumerator.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cjcopi/npointfunc/aggregate"
	"github.com/cjcopi/npointfunc/cmd/internal/cliutil"
	"github.com/cjcopi/npointfunc/errs"
	"github.com/cjcopi/npointfunc/mapio"
	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/seqfile"
	"github.com/cjcopi/npointfunc/triangle"
	"github.com/cjcopi/npointfunc/twopt"
)

const (
	codecFlag  = "codec"
	digitsFlag = "digits"
	suffixFlag = "suffix"
	nmcFlag    = "nmc"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corr3 <map> <table-prefix> [maskfile]",
		Short: "Compute the equilateral three-point correlation function",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  run,
	}
	flags := cmd.Flags()
	flags.String(codecFlag, "deflate", "table compression codec: deflate, zstd, or identity")
	flags.Int(digitsFlag, 5, "zero-padding width of the per-bin table filenames")
	flags.String(suffixFlag, ".dat", "suffix of the per-bin table filenames")
	flags.Int(nmcFlag, 0, "number of synthetic Gaussian maps to generate instead of reading <map>")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		for _, name := range []string{codecFlag, digitsFlag, suffixFlag, nmcFlag} {
			cliutil.MustBindPFlag(name, flags.Lookup(name))
		}
	}
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := cliutil.NewLogger()
	defer logger.Sync()

	variant, err := cliutil.ParseVariant(viper.GetString(codecFlag))
	if err != nil {
		return err
	}
	digits := viper.GetInt(digitsFlag)
	suffix := viper.GetString(suffixFlag)
	nmc := viper.GetInt(nmcFlag)

	names := seqfile.SequentialFileList(args[1], 0, 1, digits, suffix, func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	if len(names) == 0 {
		return errs.Wrapf(errs.ErrPrecondition, "corr3: no table files matched prefix %q", args[1])
	}

	var mask []float64
	if len(args) == 3 {
		m, err := mapio.Read(args[2])
		if err != nil {
			return err
		}
		mask = m.Values
	}

	var sampleTable *twopt.Table
	lists := make([]*triangle.Equilateral, 0, len(names))
	for _, name := range names {
		table, err := twopt.ReadFile(name, variant)
		if err != nil {
			return err
		}
		if sampleTable == nil {
			sampleTable = table
		}
		var eq triangle.Equilateral
		eq.FindTriangles(table)
		lists = append(lists, &eq)
	}

	maps, err := resolveMaps(args[0], nmc, sampleTable)
	if err != nil {
		return err
	}

	for mi, m := range maps {
		if len(maps) > 1 {
			fmt.Printf("# map %d\n", mi)
		}
		c3s, err := cliutil.ParallelOverBins(len(lists), func(i int) (float64, error) {
			eq := lists[i]
			var c3 float64
			var aggErr error
			if mask != nil {
				c3, aggErr = aggregate.ThreePointMasked(m, mask, &eq.List)
			} else {
				c3, aggErr = aggregate.ThreePoint(m, &eq.List)
			}
			if aggErr != nil {
				logger.Warnw("empty bin", "bin_index", i, "error", aggErr)
				return 0, nil
			}
			return c3, nil
		})
		if err != nil {
			return err
		}
		for i, eq := range lists {
			lengths := eq.List.Lengths()
			cosTheta := lengths[0]
			theta := math.Acos(clamp(cosTheta))
			fmt.Printf("%g %g %g\n", theta, cosTheta, c3s[i])
		}
	}
	return nil
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func resolveMaps(mapFile string, nmc int, sample *twopt.Table) ([][]float64, error) {
	if nmc <= 0 {
		m, err := mapio.Read(mapFile)
		if err != nil {
			return nil, err
		}
		if m.Nside != sample.Nside() || m.Scheme != sample.Scheme() {
			return nil, errs.Wrapf(errs.ErrPrecondition, "corr3: map nside/scheme (%d, %v) does not match two-point tables (%d, %v)", m.Nside, m.Scheme, sample.Nside(), sample.Scheme())
		}
		return [][]float64{m.Values}, nil
	}
	out := make([][]float64, nmc)
	ctx := pixel.NewContext(int(sample.Nside()))
	for i := range out {
		g := mapio.GenerateGaussian(ctx, sample.Scheme(), 0, 1, uint64(i+1))
		out[i] = g.Values
	}
	return out, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
