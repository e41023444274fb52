// Command corr2 computes the two-point correlation function of a field
// map against a sequence of per-bin two-point table files. Grounded on
// the source repository's calculate_twopt_correlation_function.cpp,
// including its "the output format is just the numeric format as spice"
// stdout convention.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cjcopi/npointfunc/aggregate"
	"github.com/cjcopi/npointfunc/cmd/internal/cliutil"
	"github.com/cjcopi/npointfunc/codec"
	"github.com/cjcopi/npointfunc/errs"
	"github.com/cjcopi/npointfunc/mapio"
	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/seqfile"
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
		Use:   "corr2 <map> <table-prefix> [maskfile]",
		Short: "Compute the two-point correlation function",
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

	prefix := args[1]
	tables, err := readTables(prefix, digits, suffix, variant)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return errs.Wrapf(errs.ErrPrecondition, "corr2: no table files matched prefix %q", prefix)
	}

	var mask []float64
	if len(args) == 3 {
		m, err := mapio.Read(args[2])
		if err != nil {
			return err
		}
		mask = m.Values
	}

	maps, err := resolveMaps(args[0], nmc, tables[0])
	if err != nil {
		return err
	}

	for mi, m := range maps {
		if len(maps) > 1 {
			fmt.Printf("# map %d\n", mi)
		}
		c2s, err := cliutil.ParallelOverBins(len(tables), func(i int) (float64, error) {
			table := tables[i]
			var c2 float64
			var aggErr error
			if mask != nil {
				c2, aggErr = aggregate.TwoPointMasked(m, mask, table)
			} else {
				c2, aggErr = aggregate.TwoPoint(m, table)
			}
			if aggErr != nil {
				logger.Warnw("empty bin", "bin_value", table.BinValue(), "error", aggErr)
				return 0, nil
			}
			return c2, nil
		})
		if err != nil {
			return err
		}
		for i, table := range tables {
			cosTheta := table.BinValue()
			theta := math.Acos(clamp(cosTheta))
			fmt.Printf("%g %g %g\n", theta, cosTheta, c2s[i])
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

func readTables(prefix string, digits int, suffix string, variant codec.Variant) ([]*twopt.Table, error) {
	names := seqfile.SequentialFileList(prefix, 0, 1, digits, suffix, func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	tables := make([]*twopt.Table, 0, len(names))
	for _, name := range names {
		t, err := twopt.ReadFile(name, variant)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func resolveMaps(mapFile string, nmc int, sample *twopt.Table) ([][]float64, error) {
	if nmc <= 0 {
		m, err := mapio.Read(mapFile)
		if err != nil {
			return nil, err
		}
		if m.Nside != sample.Nside() || m.Scheme != sample.Scheme() {
			return nil, errs.Wrapf(errs.ErrPrecondition, "corr2: map nside/scheme (%d, %v) does not match two-point tables (%d, %v)", m.Nside, m.Scheme, sample.Nside(), sample.Scheme())
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
