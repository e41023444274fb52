// Package quad enumerates rhombic quadrilaterals: pairs of equilateral
// triangles sharing exactly one edge. Grounded on the source repository's
// Pixel_Triangles.h (the Quadrilaterals_Rhombic class embedded there), with
// two additions spelled out in the expanded design: a skip list for O(1)
// single-base-pixel restarts, and a full-sky symmetry driver built on the
// `pixel` package's rotation/reflection primitives so the full pixel sphere
// need not be enumerated directly.
package quad

import "github.com/cjcopi/npointfunc/triangle"

// Basic incrementally emits, for each base equilateral triangle in a
// triangle.Equilateral list, every pixel that completes it into a rhombic
// quadrilateral.
type Basic struct {
	tri *triangle.Equilateral
	ind int
	// stop reports whether the enumerator should halt without inspecting
	// triangle ind (used to bound a single-base-pixel-value pass).
	stop func(ind int) bool
}

// NewBasic constructs an enumerator that walks every triangle in tri.
func NewBasic(tri *triangle.Equilateral) *Basic {
	return &Basic{tri: tri, ind: 0, stop: func(int) bool { return false }}
}

// NewBasicFrom constructs an enumerator restricted to base triangles whose
// first corner equals p, using skip to jump directly to the first such
// triangle.
func NewBasicFrom(tri *triangle.Equilateral, p int32, skip []int32) *Basic {
	start := int(skip[p])
	return &Basic{
		tri: tri,
		ind: start,
		stop: func(ind int) bool {
			return ind >= tri.Size() || tri.Corners(ind)[0] > p
		},
	}
}

// BuildSkipList computes skip[p] = the smallest triangle index j with
// corners[j][0] == p, for every pixel value in [0, npix). Pixel values with
// no base triangle map forward to the next present value; trailing absent
// values map to tri.Size().
func BuildSkipList(tri *triangle.Equilateral, npix int) []int32 {
	skip := make([]int32, npix+1)
	return backfillSkip(tri, skip, npix)
}

func backfillSkip(tri *triangle.Equilateral, skip []int32, npix int) []int32 {
	present := make([]bool, npix+1)
	for j := tri.Size() - 1; j >= 0; j-- {
		c := tri.Corners(j)[0]
		present[c] = true
		skip[c] = int32(j)
	}
	next := int32(tri.Size())
	for p := npix; p >= 0; p-- {
		if p < npix && present[p] {
			next = skip[p]
		}
		skip[p] = next
	}
	return skip
}

func (b *Basic) c0(j int) int32 { return b.tri.Corners(j)[0] }
func (b *Basic) c1(j int) int32 { return b.tri.Corners(j)[1] }
func (b *Basic) c2(j int) int32 { return b.tri.Corners(j)[2] }

// Next advances to the next base triangle, returning its three corners
// (pts) and the full set of fourth points (thirdPts) that complete a
// rhombic quadrilateral with it. ok is false once the enumerator is
// exhausted.
func (b *Basic) Next() (pts [3]int32, thirdPts []int32, ok bool) {
	if b.ind >= b.tri.Size()-1 || b.stop(b.ind) {
		return pts, nil, false
	}
	pts = b.tri.Corners(b.ind)
	o := b.tri.Orientation(b.ind)
	j := b.ind + 1
	n := b.tri.Size()

	for j < n && b.c1(j) == pts[1] && b.c0(j) == pts[0] {
		if o != b.tri.Orientation(j) {
			thirdPts = append(thirdPts, b.c2(j))
		}
		j++
	}
	for j < n && b.c1(j) < pts[2] && b.c0(j) == pts[0] {
		if o != b.tri.Orientation(j) && b.c2(j) == pts[2] {
			thirdPts = append(thirdPts, b.c1(j))
		}
		j++
	}
	for j < n && b.c1(j) < pts[2] && b.c0(j) == pts[0] {
		j++
	}
	for j < n && b.c1(j) == pts[2] && b.c0(j) == pts[0] {
		if o == b.tri.Orientation(j) {
			thirdPts = append(thirdPts, b.c2(j))
		}
		j++
	}
	for j < n && b.c0(j) < pts[1] {
		prev := b.c0(j)
		for j < n && b.c1(j) < pts[1] && b.c0(j) == prev {
			j++
		}
		for j < n && b.c1(j) == pts[1] && b.c0(j) == prev {
			if o != b.tri.Orientation(j) && b.c2(j) == pts[2] {
				thirdPts = append(thirdPts, b.c0(j))
			}
			j++
		}
		for j < n && b.c0(j) == prev {
			j++
		}
	}
	for j < n && b.c1(j) < pts[2] && b.c0(j) == pts[1] {
		if o == b.tri.Orientation(j) && b.c2(j) == pts[2] {
			thirdPts = append(thirdPts, b.c1(j))
		}
		j++
	}
	for j < n && b.c1(j) == pts[2] && b.c0(j) == pts[1] {
		if o != b.tri.Orientation(j) {
			thirdPts = append(thirdPts, b.c2(j))
		}
		j++
	}

	b.ind++
	return pts, thirdPts, true
}
