package quad

import (
	"sort"
	"testing"

	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/triangle"
	"github.com/cjcopi/npointfunc/twopt"
)

// buildWideTable constructs a write-mode two-point table connecting every
// distinct pixel pair at the given Nside, so the resulting equilateral
// triangle list is large enough to exercise the quadrilateral search.
func buildWideTable(nside int) (*twopt.Table, *pixel.Context) {
	ctx := pixel.NewContext(nside)
	npix := ctx.Npix()
	pixlist := make([]int32, npix)
	for i := range pixlist {
		pixlist[i] = int32(i)
	}
	table := twopt.New(uint64(nside), pixel.NEST, pixlist, 0)
	for i := 0; i < npix; i++ {
		for j := i + 1; j < npix; j++ {
			table.Add(int32(i), int32(j))
		}
	}
	return table, ctx
}

func buildEquilateral(nside int) (*triangle.Equilateral, *pixel.Context) {
	table, ctx := buildWideTable(nside)
	var eq triangle.Equilateral
	eq.FindTriangles(table)
	return &eq, ctx
}

func TestBuildSkipListInvariant(t *testing.T) {
	eq, ctx := buildEquilateral(1)
	npix := ctx.Npix()
	skip := BuildSkipList(eq, npix)

	if len(skip) != npix+1 {
		t.Fatalf("len(skip) = %d, want %d", len(skip), npix+1)
	}
	for j := 0; j < eq.Size(); j++ {
		p := eq.Corners(j)[0]
		if int(skip[p]) > j {
			t.Errorf("skip[%d] = %d, want <= %d (first occurrence)", p, skip[p], j)
		}
	}
	// skip is non-decreasing and terminates at Size().
	for p := 0; p < npix; p++ {
		if skip[p] > skip[p+1] {
			t.Errorf("skip not non-decreasing at %d: %d > %d", p, skip[p], skip[p+1])
		}
	}
	if skip[npix] != int32(eq.Size()) {
		t.Errorf("skip[npix] = %d, want %d", skip[npix], eq.Size())
	}
}

func TestBasicEnumeratesValidTriples(t *testing.T) {
	eq, _ := buildEquilateral(1)

	b := NewBasic(eq)
	count := 0
	for {
		pts, third, ok := b.Next()
		if !ok {
			break
		}
		count++
		if !(pts[0] < pts[1] && pts[1] < pts[2]) {
			t.Errorf("pts %v not monotonically increasing", pts)
		}
		for _, d := range third {
			if d == pts[0] || d == pts[1] || d == pts[2] {
				t.Errorf("third point %d duplicates a base corner %v", d, pts)
			}
		}
		if count > eq.Size() {
			t.Fatal("Basic did not terminate within Size() steps")
		}
	}
}

func TestBasicFromRestrictsToPixelValue(t *testing.T) {
	eq, ctx := buildEquilateral(1)
	skip := BuildSkipList(eq, ctx.Npix())

	// Pick a pixel value known to start at least one base triangle.
	var p int32 = -1
	for j := 0; j < eq.Size(); j++ {
		p = eq.Corners(j)[0]
		break
	}
	if p < 0 {
		t.Skip("no triangles found at this Nside")
	}

	b := NewBasicFrom(eq, p, skip)
	for {
		pts, _, ok := b.Next()
		if !ok {
			break
		}
		if pts[0] != p {
			t.Errorf("pts[0] = %d, want %d", pts[0], p)
		}
	}
}

func sortedQuad(a, b, c, d int32) [4]int32 {
	q := [4]int32{a, b, c, d}
	sort.Slice(q[:], func(i, j int) bool { return q[i] < q[j] })
	return q
}

// TestFullSkyEnumeratorClosureNside2 checks testable property 9: the
// full-sky enumerator's output set, at an Nside large enough that each base
// pixel holds more than one pixel value (Nside=1 trivially degenerates to
// one representative per face), is closed under the shift and both
// reflections.
func TestFullSkyEnumeratorClosureNside2(t *testing.T) {
	eq, ctx := buildEquilateral(2)

	e := NewFullSkyEnumerator(ctx, pixel.NEST, eq)
	seen := make(map[[4]int32]bool)
	count, limit := 0, 2000000
	for {
		pts, third, ok := e.Next(eq)
		if !ok {
			break
		}
		for _, d := range third {
			seen[sortedQuad(pts[0], pts[1], pts[2], d)] = true
		}
		count++
		if count > limit {
			t.Fatal("FullSkyEnumerator did not terminate within the expected bound")
		}
	}
	if len(seen) == 0 {
		t.Fatal("no quadrilaterals found at Nside=2")
	}

	checkClosed := func(name string, tr func(int) int) {
		for q := range seen {
			var out [4]int32
			for i, p := range q {
				out[i] = int32(tr(int(p)))
			}
			key := sortedQuad(out[0], out[1], out[2], out[3])
			if !seen[key] {
				t.Errorf("%s: quad %v maps to %v, which is not in the output set", name, q, key)
			}
		}
	}
	checkClosed("shift", func(p int) int { return ctx.ShiftByBasePixel(p, pixel.NEST) })
	checkClosed("reflect-equator", func(p int) int { return ctx.ReflectThroughEquator(p, pixel.NEST) })
	checkClosed("reflect-zaxis", func(p int) int { return ctx.ReflectThroughZAxis(p, pixel.NEST) })
}

func TestFullSkyEnumeratorTerminates(t *testing.T) {
	eq, ctx := buildEquilateral(1)

	e := NewFullSkyEnumerator(ctx, pixel.NEST, eq)
	npix := ctx.Npix()
	count := 0
	limit := 100000
	for {
		pts, third, ok := e.Next(eq)
		if !ok {
			break
		}
		for _, p := range pts {
			if p < 0 || int(p) >= npix {
				t.Fatalf("pixel %d out of range [0,%d)", p, npix)
			}
		}
		for _, d := range third {
			if d < 0 || int(d) >= npix {
				t.Fatalf("third point %d out of range [0,%d)", d, npix)
			}
		}
		count++
		if count > limit {
			t.Fatal("FullSkyEnumerator did not terminate within the expected bound")
		}
	}
}
