// Command corr4 computes the four-point correlation function by replaying
// a sequence of per-bin quadrilateral list files against a field map (or,
// in Monte-Carlo mode, a batch of synthetic maps in a single pass).
// Grounded on the source repository's
// calculate_fourpt_correlation_function.cpp.
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
	"github.com/cjcopi/npointfunc/quadfile"
	"github.com/cjcopi/npointfunc/seqfile"
)

const (
	digitsFlag = "digits"
	suffixFlag = "suffix"
	nmcFlag    = "nmc"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corr4 <map> <quadfile-prefix> [maskfile]",
		Short: "Compute the rhombic four-point correlation function",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  run,
	}
	flags := cmd.Flags()
	flags.Int(digitsFlag, 5, "zero-padding width of the per-bin quadrilateral filenames")
	flags.String(suffixFlag, ".dat", "suffix of the per-bin quadrilateral filenames")
	flags.Int(nmcFlag, 0, "number of synthetic Gaussian maps to generate instead of reading <map>")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		for _, name := range []string{digitsFlag, suffixFlag, nmcFlag} {
			cliutil.MustBindPFlag(name, flags.Lookup(name))
		}
	}
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	logger := cliutil.NewLogger()
	defer logger.Sync()

	digits := viper.GetInt(digitsFlag)
	suffix := viper.GetString(suffixFlag)
	nmc := viper.GetInt(nmcFlag)

	names := seqfile.SequentialFileList(args[1], 0, 1, digits, suffix, func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	if len(names) == 0 {
		return errs.Wrapf(errs.ErrPrecondition, "corr4: no quadrilateral files matched prefix %q", args[1])
	}

	var mask []float64
	if len(args) == 3 {
		m, err := mapio.Read(args[2])
		if err != nil {
			return err
		}
		mask = m.Values
	}

	readers := make([]*quadfile.Reader, 0, len(names))
	for _, name := range names {
		r, err := quadfile.Open(name)
		if err != nil {
			return err
		}
		defer r.Close()
		readers = append(readers, r)
	}

	nside, scheme := readers[0].Nside(), readers[0].Scheme()

	if nmc <= 0 {
		m, err := mapio.Read(args[0])
		if err != nil {
			return err
		}
		if m.Nside != nside || m.Scheme != scheme {
			return errs.Wrapf(errs.ErrPrecondition, "corr4: map nside/scheme (%d, %v) does not match quadrilateral files (%d, %v)", m.Nside, m.Scheme, nside, scheme)
		}
		if mask != nil {
			return printSingle(readers, func(r *quadfile.Reader) (float64, error) {
				return aggregate.FourPointMasked(m.Values, mask, r)
			}, logger)
		}
		return printSingle(readers, func(r *quadfile.Reader) (float64, error) {
			return aggregate.FourPoint(m.Values, r)
		}, logger)
	}

	ctx := pixel.NewContext(int(nside))
	maps := make([][]float64, nmc)
	for i := range maps {
		g := mapio.GenerateGaussian(ctx, scheme, 0, 1, uint64(i+1))
		maps[i] = g.Values
	}

	// perMap[bin][map]
	perMap := make([][]float64, len(readers))
	centres := make([]float64, len(readers))
	for i, r := range readers {
		centres[i] = r.BinValue()
	}
	_, err := cliutil.ParallelOverBins(len(readers), func(bi int) (float64, error) {
		results, err := aggregate.FourPointBatch(maps, readers[bi])
		if err != nil {
			logger.Warnw("empty bin", "bin_value", readers[bi].BinValue(), "error", err)
			results = make([]float64, len(maps))
		}
		perMap[bi] = results
		return 0, nil
	})
	if err != nil {
		return err
	}

	for _, c := range centres {
		fmt.Printf("%g ", c)
	}
	fmt.Println()
	for mi := range maps {
		for bi := range readers {
			fmt.Printf("%g ", perMap[bi][mi])
		}
		fmt.Println()
	}
	return nil
}

func printSingle(readers []*quadfile.Reader, f func(*quadfile.Reader) (float64, error), logger interface {
	Warnw(string, ...interface{})
}) error {
	c4s, err := cliutil.ParallelOverBins(len(readers), func(i int) (float64, error) {
		c4, err := f(readers[i])
		if err != nil {
			logger.Warnw("empty bin", "bin_value", readers[i].BinValue(), "error", err)
			return 0, nil
		}
		return c4, nil
	})
	if err != nil {
		return err
	}
	for i, r := range readers {
		cosTheta := r.BinValue()
		theta := math.Acos(clamp(cosTheta))
		fmt.Printf("%g %g %g\n", theta, cosTheta, c4s[i])
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

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
