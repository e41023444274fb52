// Package triangle enumerates pixel triangles from two-point tables:
// general (all three side lengths distinct), isosceles (two equal sides),
// and equilateral (all sides equal). Grounded on the source repository's
// Pixel_Triangles.h, generalized from its C++ template parameter T to a
// fixed int32 pixel type and from `healpix_base`/`vec3` to the `pixel`
// package.
package triangle

import (
	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/twopt"
)

// Orientation is the handedness of a triangle's three corner vectors.
type Orientation int

const (
	RightHanded Orientation = iota
	LeftHanded
)

// Orient computes the orientation of the triangle (n1, n2, n3): righthanded
// when (n1 x n2) . n3 > 0.
func Orient(n1, n2, n3 pixel.Vec3) Orientation {
	if pixel.Dot(pixel.Cross(n1, n2), n3) > 0 {
		return RightHanded
	}
	return LeftHanded
}

// List is the shared storage and lookup machinery for all three enumerator
// flavors: every triple of corner pixels found, each triple's orientation,
// and the pixelization the corners belong to. The pixel values themselves
// are stored, not two-point-table indices.
type List struct {
	corners     [][3]int32
	orientation []Orientation
	edgeLength  [3]float64
	nside       uint64
	scheme      pixel.Scheme
	vec         []pixel.Vec3
}

func (l *List) reset() {
	l.corners = l.corners[:0]
	l.orientation = l.orientation[:0]
}

func (l *List) add(p1, p2, p3 int32) {
	l.corners = append(l.corners, [3]int32{p1, p2, p3})
	l.orientation = append(l.orientation, Orient(l.vec[p1], l.vec[p2], l.vec[p3]))
}

func (l *List) initialize(t1, t2, t3 *twopt.Table) {
	l.reset()
	l.edgeLength = [3]float64{t1.BinValue(), t2.BinValue(), t3.BinValue()}
	l.nside = t1.Nside()
	l.scheme = t1.Scheme()
	l.vec = fillVectorList(t1.Nside(), t1.Scheme())
}

func fillVectorList(nside uint64, scheme pixel.Scheme) []pixel.Vec3 {
	ctx := pixel.NewContext(int(nside))
	npix := ctx.Npix()
	v := make([]pixel.Vec3, npix)
	for p := 0; p < npix; p++ {
		v[p] = ctx.PixToVec(p, scheme)
	}
	return v
}

// Size returns the number of triangles found.
func (l *List) Size() int { return len(l.corners) }

// Corners returns the three corner pixel values of triangle j.
func (l *List) Corners(j int) [3]int32 { return l.corners[j] }

// Orientation returns the orientation of triangle j.
func (l *List) Orientation(j int) Orientation { return l.orientation[j] }

// Lengths returns the bin values of the three tables the list was built
// from, in the order they were passed, shared by every triangle in the list.
func (l *List) Lengths() [3]float64 { return l.edgeLength }

// Nside returns the pixelization resolution of the corner pixels.
func (l *List) Nside() uint64 { return l.nside }

// Scheme returns the pixelization ordering scheme of the corner pixels.
func (l *List) Scheme() pixel.Scheme { return l.scheme }

// appendMatches finds the common values of two monotonically increasing,
// -1-padded row slices and appends them to res.
func appendMatches(row1, row2 []int32, res []int32) []int32 {
	i, j := 0, 0
	for i < len(row1) && j < len(row2) && row1[i] != -1 && row2[j] != -1 {
		switch {
		case row1[i] == row2[j]:
			res = append(res, row1[i])
			i++
			j++
		case row1[i] < row2[j]:
			i++
		default:
			j++
		}
	}
	return res
}

// appendMatchesFrom is appendMatches with a minimum value: every appended
// entry is >= minval.
func appendMatchesFrom(minval int32, row1, row2 []int32, res []int32) []int32 {
	i, j := 0, 0
	for i < len(row1) && row1[i] < minval {
		i++
	}
	for j < len(row2) && row2[j] < minval {
		j++
	}
	return appendMatches(row1[i:], row2[j:], res)
}

// row returns two-point table t's row for local pixel index i, truncated at
// t's Nmax width (the padded -1 sentinel terminates it on scan).
func row(t *twopt.Table, i int) []int32 {
	nmax := t.Nmax()
	out := make([]int32, nmax)
	for k := 0; k < nmax; k++ {
		out[k] = t.Element(i, k)
	}
	return out
}

// General enumerates all triangles, including cyclic permutations, formed
// from three distinct two-point tables.
type General struct {
	List
}

// FindTriangles finds every triangle (p1, p2, p3) with p1-p2 in t1, p1-p3 in
// t2, and p2-p3 in t3.
func (g *General) FindTriangles(t1, t2, t3 *twopt.Table) {
	g.initialize(t1, t2, t3)
	var trip []int32
	for i1 := 0; i1 < t1.Npix(); i1++ {
		p1 := t1.PixelList()[i1]
		r1 := row(t1, i1)
		for j2 := 0; j2 < len(r1) && r1[j2] != -1; j2++ {
			i2 := r1[j2]
			p2 := t1.PixelList()[i2]
			trip = trip[:0]
			trip = appendMatches(row(t2, i1), row(t3, int(i2)), trip)
			for _, k := range trip {
				g.add(p1, p2, t1.PixelList()[k])
			}
		}
	}
}

// Isosceles enumerates unique triangles where the angular separation of
// corners 2-3 and 3-1 is equal, distinct from 1-2.
type Isosceles struct {
	List
}

// FindTriangles finds every isosceles triangle. tequal supplies both equal
// sides; tother supplies the distinct side. Corners are stored with the
// base pair in increasing order and the apex last; the handedness of that
// order is recorded as the triangle's orientation.
func (g *Isosceles) FindTriangles(tequal, tother *twopt.Table) {
	g.initialize(tother, tequal, tequal)
	var trip []int32
	for i1 := 0; i1 < tother.Npix(); i1++ {
		p1 := tother.PixelList()[i1]
		r1 := row(tother, i1)
		for j2 := 0; j2 < len(r1) && r1[j2] != -1; j2++ {
			i2 := r1[j2]
			p2 := tother.PixelList()[i2]
			if p2 < p1 {
				continue
			}
			trip = trip[:0]
			trip = appendMatches(row(tequal, i1), row(tequal, int(i2)), trip)
			for _, k := range trip {
				g.add(p1, p2, tequal.PixelList()[k])
			}
		}
	}
}

// Equilateral enumerates unique triangles with all three sides equal,
// stored with corners in monotonically increasing pixel order.
type Equilateral struct {
	List
}

// FindTriangles finds every equilateral triangle drawn from a single
// two-point table.
func (g *Equilateral) FindTriangles(t *twopt.Table) {
	g.initialize(t, t, t)
	var trip []int32
	for i1 := 0; i1 < t.Npix(); i1++ {
		p1 := t.PixelList()[i1]
		r1 := row(t, i1)
		for j2 := 0; j2 < len(r1) && r1[j2] != -1; j2++ {
			i2 := r1[j2]
			p2 := t.PixelList()[i2]
			if p2 < p1 {
				continue
			}
			trip = trip[:0]
			trip = appendMatchesFrom(i2, row(t, i1), row(t, int(i2)), trip)
			for _, k := range trip {
				g.add(p1, p2, t.PixelList()[k])
			}
		}
	}
}
