package binning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cjcopi/npointfunc/codec"
	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/seqfile"
	"github.com/cjcopi/npointfunc/twopt"
)

func TestReadCosBinFileSortsCenters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cosbin.dat")
	contents := "0.5\n# a comment\n-0.5\n\n0.0\n0.25 # trailing\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	centers, err := ReadCosBinFile(path)
	if err != nil {
		t.Fatalf("ReadCosBinFile: %v", err)
	}
	want := []float64{-0.5, 0.0, 0.25, 0.5}
	if len(centers) != len(want) {
		t.Fatalf("len(centers) = %d, want %d", len(centers), len(want))
	}
	for i := range want {
		if centers[i] != want[i] {
			t.Errorf("centers[%d] = %g, want %g", i, centers[i], want[i])
		}
	}
}

func TestFromDCosBinMonotonicEdges(t *testing.T) {
	spec := FromDCosBin(0.5)
	if len(spec.Edges) != len(spec.Centers)+1 {
		t.Fatalf("len(Edges) = %d, want %d", len(spec.Edges), len(spec.Centers)+1)
	}
	for i := 1; i < len(spec.Edges); i++ {
		if spec.Edges[i] <= spec.Edges[i-1] {
			t.Errorf("edges not monotonic at %d: %v <= %v", i, spec.Edges[i], spec.Edges[i-1])
		}
	}
	if spec.Edges[0] >= -1 || spec.Edges[len(spec.Edges)-1] <= 1 {
		t.Errorf("edges not extended past +-1: %v", spec.Edges)
	}
}

func TestFromDThetaMonotonicEdges(t *testing.T) {
	spec := FromDTheta(30)
	if len(spec.Edges) != len(spec.Centers)+1 {
		t.Fatalf("len(Edges) = %d, want %d", len(spec.Edges), len(spec.Centers)+1)
	}
	for i := 1; i < len(spec.Edges); i++ {
		if spec.Edges[i] <= spec.Edges[i-1] {
			t.Errorf("edges not monotonic at %d: %v <= %v", i, spec.Edges[i], spec.Edges[i-1])
		}
	}
}

func TestPixelListFullSky(t *testing.T) {
	ctx := pixel.NewContext(2)
	list := PixelList(ctx, nil)
	if len(list) != ctx.Npix() {
		t.Fatalf("len(list) = %d, want %d", len(list), ctx.Npix())
	}
}

func TestPixelListMasked(t *testing.T) {
	ctx := pixel.NewContext(2)
	mask := make([]float64, ctx.Npix())
	mask[3] = 1
	mask[7] = 1
	list := PixelList(ctx, mask)
	if len(list) != 2 || list[0] != 3 || list[1] != 7 {
		t.Fatalf("PixelList() = %v, want [3 7]", list)
	}
}

func TestScratchAndTableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := pixel.NewContext(2)
	pixelList := PixelList(ctx, nil)

	spec := FromDCosBin(0.5)
	params := Params{
		TmpFilePrefix:   filepath.Join(dir, "tmp_"),
		TwoptFilePrefix: filepath.Join(dir, "twopt_"),
	}

	if err := WriteScratchFiles(ctx, pixel.NEST, pixelList, spec, params); err != nil {
		t.Fatalf("WriteScratchFiles: %v", err)
	}
	if err := BuildTwoptTables(uint64(2), pixel.NEST, pixelList, spec, params, codec.Identity); err != nil {
		t.Fatalf("BuildTwoptTables: %v", err)
	}

	// Every table should cover every pixel, and at least one bin should
	// hold at least one entry.
	foundAny := false
	for k := range spec.Centers {
		name := seqfile.MakeFilename(params.TwoptFilePrefix, k, 5, ".dat")
		table, err := twopt.ReadFile(name, codec.Identity)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if table.Npix() != ctx.Npix() {
			t.Errorf("table %d Npix() = %d, want %d", k, table.Npix(), ctx.Npix())
		}
		for i := 0; i < table.Npix(); i++ {
			if table.Nmax() > 0 && table.Element(i, 0) != -1 {
				foundAny = true
			}
		}
	}
	if !foundAny {
		t.Error("no pairs were recorded in any bin")
	}
}
