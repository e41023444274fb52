package binning

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/cjcopi/npointfunc/array"
	"github.com/cjcopi/npointfunc/codec"
	"github.com/cjcopi/npointfunc/errs"
	"github.com/cjcopi/npointfunc/pairfile"
	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/seqfile"
	"github.com/cjcopi/npointfunc/twopt"
)

// Params configures a pair-binning run. Optional fields are nil pointers
// when unset, mirroring the three mutually exclusive bin-specification
// paths and the mask-file/Nside choice of the source repository's
// parameter file.
type Params struct {
	Nside    *int
	MaskFile string

	DCosBin    *float64
	DTheta     *float64
	CosBinFile string

	TmpFilePrefix   string
	TwoptFilePrefix string
	CleanTmpFiles   bool

	Digits int    // zero-padding width for numbered files; 0 selects 5
	Suffix string // file suffix; "" selects ".dat"
}

// PixelList returns [0, npix) in NEST order, or, when mask is non-nil, the
// NEST-order indices where mask[p] > 0.5.
func PixelList(ctx *pixel.Context, mask []float64) []int32 {
	npix := ctx.Npix()
	if mask == nil {
		list := make([]int32, npix)
		for i := range list {
			list[i] = int32(i)
		}
		return list
	}
	ok := array.Greater(mask, 0.5)
	var list []int32
	for p := 0; p < npix; p++ {
		if ok[p] {
			list = append(list, int32(p))
		}
	}
	return list
}

// ResolveBinSpec builds a BinSpec from whichever of CosBinFile/DCosBin/
// DTheta is set, preferring CosBinFile, then DCosBin, then DTheta.
func ResolveBinSpec(p Params) (BinSpec, error) {
	if p.CosBinFile != "" {
		centers, err := ReadCosBinFile(p.CosBinFile)
		if err != nil {
			return BinSpec{}, err
		}
		return FromCosBinFile(centers), nil
	}
	if p.DCosBin != nil {
		return FromDCosBin(*p.DCosBin), nil
	}
	if p.DTheta != nil {
		return FromDTheta(*p.DTheta), nil
	}
	return BinSpec{}, errs.Wrapf(errs.ErrConfig, "binning: one of cosbinfile, dcosbin, or dtheta must be set")
}

func (p Params) digits() int {
	if p.Digits > 0 {
		return p.Digits
	}
	return 5
}

func (p Params) suffix() string {
	if p.Suffix != "" {
		return p.Suffix
	}
	return ".dat"
}

// WriteScratchFiles scans every unordered pixel pair once, computing its
// separation cos(theta) and appending it to the per-bin scratch file. The
// bin is located by a bidirectional linear walk from the previous pair's
// bin, exploiting the fact that a NEST-ordered pixel list visits nearby
// directions consecutively.
func WriteScratchFiles(ctx *pixel.Context, scheme pixel.Scheme, pixelList []int32, spec BinSpec, p Params) error {
	npix := len(pixelList)
	vec := make([]pixel.Vec3, npix)
	for i, pix := range pixelList {
		vec[i] = ctx.PixToVec(int(pix), scheme)
	}

	files := make([]*pairfile.File, len(spec.Centers))
	for k := range files {
		name := seqfile.MakeFilename(p.TmpFilePrefix, k, p.digits(), p.suffix())
		f := pairfile.New(name, 0)
		if err := f.Create(); err != nil {
			return err
		}
		files[k] = f
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	ibin := 0
	edges := spec.Edges
	for i := 0; i < npix; i++ {
		for j := i + 1; j < npix; j++ {
			dp := pixel.Dot(vec[i], vec[j])
			dir := -1
			if dp > edges[ibin] {
				dir = 1
			}
			for dp < edges[ibin] || dp > edges[ibin+1] {
				ibin += dir
			}
			if err := files[ibin].Append(int32(i), int32(j)); err != nil {
				return err
			}
		}
	}
	for _, f := range files {
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// BuildTwoptTables replays each bin's scratch file into a compressed
// two-point table, processing bins concurrently via a bounded worker pool
// (the Go analogue of the original's `#pragma omp parallel for
// schedule(guided)`).
func BuildTwoptTables(nside uint64, scheme pixel.Scheme, pixelList []int32, spec BinSpec, p Params, variant codec.Variant) error {
	pl := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0)).WithErrors()

	for k := range spec.Centers {
		k := k
		pl.Go(func() error {
			tmpName := seqfile.MakeFilename(p.TmpFilePrefix, k, p.digits(), p.suffix())
			in := pairfile.New(tmpName, 0)
			if err := in.OpenRead(); err != nil {
				return err
			}
			defer in.Close()

			table := twopt.New(nside, scheme, pixelList, spec.Centers[k])
			for {
				i, j, ok, err := in.ReadNextPair()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				table.AddPair(i, j)
			}

			if p.CleanTmpFiles {
				if err := in.Remove(); err != nil {
					return err
				}
			}

			outName := seqfile.MakeFilename(p.TwoptFilePrefix, k, p.digits(), p.suffix())
			return table.WriteFile(outName, variant)
		})
	}
	return pl.Wait()
}
