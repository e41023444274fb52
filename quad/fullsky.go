package quad

import (
	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/triangle"
)

// transform is one element of the pixelization's symmetry group, applied
// pixel-wise to a quadrilateral's four corners.
type transform func(ctx *pixel.Context, pix int, scheme pixel.Scheme) int

func identity(_ *pixel.Context, pix int, _ pixel.Scheme) int { return pix }

func shift(ctx *pixel.Context, pix int, scheme pixel.Scheme) int {
	return ctx.ShiftByBasePixel(pix, scheme)
}

func reflectEquator(ctx *pixel.Context, pix int, scheme pixel.Scheme) int {
	return ctx.ReflectThroughEquator(pix, scheme)
}

func reflectZAxis(ctx *pixel.Context, pix int, scheme pixel.Scheme) int {
	return ctx.ReflectThroughZAxis(pix, scheme)
}

func compose(outer, inner transform) transform {
	return func(ctx *pixel.Context, pix int, scheme pixel.Scheme) int {
		return outer(ctx, inner(ctx, pix, scheme), scheme)
	}
}

// classATransforms is the 8-element group applied to class-A base pixels:
// the four rotations, and the four rotations composed with an equator
// reflection (SPEC_FULL.md §4.5.1's table).
func classATransforms() []transform {
	var out []transform
	cur := transform(identity)
	for i := 0; i < 4; i++ {
		out = append(out, cur)
		cur = compose(shift, cur)
	}
	cur = reflectEquator
	for i := 0; i < 4; i++ {
		out = append(out, cur)
		cur = compose(shift, cur)
	}
	return out
}

// classBTransforms extends classATransforms with the z-axis reflection and
// both reflections composed, each carried through all four rotations (16
// total).
func classBTransforms() []transform {
	out := classATransforms()
	cur := transform(reflectZAxis)
	for i := 0; i < 4; i++ {
		out = append(out, cur)
		cur = compose(shift, cur)
	}
	cur = compose(reflectEquator, reflectZAxis)
	for i := 0; i < 4; i++ {
		out = append(out, cur)
		cur = compose(shift, cur)
	}
	return out
}

// FullSkyEnumerator walks only the canonical class-A and class-B base
// pixels of the pixelization, expanding each found rhombic quadrilateral
// through the symmetry group. Grounded on SPEC_FULL.md §4.5.1; in place of
// the original's optcount-threshold bookkeeping, each found quadrilateral
// is emitted once per entry of a precomputed transform list.
type FullSkyEnumerator struct {
	ctx    *pixel.Context
	scheme pixel.Scheme

	basePixels  []int
	transforms  []transform
	classSwitch int // index into basePixels where class B begins

	pixelIdx int
	basic    *Basic
	skip     []int32

	state       state
	transformAt int

	curPts   [3]int32
	curThird []int32
	haveBase bool
}

type state int

const (
	stateFindQuads state = iota
	stateShift
	stateReflectA
	stateReflectB
	stateReflectAB
	stateDone
)

// NewFullSkyEnumerator constructs a driver over tri's base triangles at the
// pixelization described by ctx/scheme.
func NewFullSkyEnumerator(ctx *pixel.Context, scheme pixel.Scheme, tri *triangle.Equilateral) *FullSkyEnumerator {
	classA := ctx.BasePixelClassA(scheme)
	classB := ctx.BasePixelClassB(scheme)
	basePixels := append(append([]int(nil), classA...), classB...)

	e := &FullSkyEnumerator{
		ctx:         ctx,
		scheme:      scheme,
		basePixels:  basePixels,
		classSwitch: len(classA),
		skip:        BuildSkipList(tri, ctx.Npix()),
	}
	e.transforms = classATransforms()
	e.advanceToNextBasePixel(tri)
	return e
}

func (e *FullSkyEnumerator) inClassB() bool {
	return e.pixelIdx >= e.classSwitch
}

// advanceToNextBasePixel positions the underlying single-pixel enumerator
// on the next base pixel with at least one completable triangle,
// restarting the transform list appropriately for its class.
func (e *FullSkyEnumerator) advanceToNextBasePixel(tri *triangle.Equilateral) {
	for e.pixelIdx < len(e.basePixels) {
		p := int32(e.basePixels[e.pixelIdx])
		e.basic = NewBasicFrom(tri, p, e.skip)
		if e.inClassB() {
			e.transforms = classBTransforms()
		} else {
			e.transforms = classATransforms()
		}
		if e.findNextBaseTriangle() {
			return
		}
		e.pixelIdx++
	}
	e.state = stateDone
}

// findNextBaseTriangle pulls base triangles from the current Basic
// enumerator until one has a non-empty third-point set, or the enumerator
// is exhausted.
func (e *FullSkyEnumerator) findNextBaseTriangle() bool {
	for {
		pts, third, ok := e.basic.Next()
		if !ok {
			return false
		}
		if len(third) > 0 {
			e.curPts = pts
			e.curThird = third
			e.transformAt = 0
			e.state = stateFindQuads
			return true
		}
	}
}

// Next yields one symmetry-transformed (pts, thirdPts) variant of the
// current base quadrilateral set, advancing to the next base triangle (and,
// eventually, the next base pixel) once every transform in the group has
// been emitted.
func (e *FullSkyEnumerator) Next(tri *triangle.Equilateral) (pts [3]int32, thirdPts []int32, ok bool) {
	for {
		if e.state == stateDone {
			return pts, nil, false
		}
		if e.transformAt < len(e.transforms) {
			tr := e.transforms[e.transformAt]
			e.transformAt++
			return e.applyTransform(tr), e.applyTransformThird(tr), true
		}
		// Exhausted this base triangle's transforms; find the next one.
		if e.findNextBaseTriangle() {
			continue
		}
		e.pixelIdx++
		e.advanceToNextBasePixel(tri)
	}
}

func (e *FullSkyEnumerator) applyTransform(tr transform) [3]int32 {
	var out [3]int32
	for i, p := range e.curPts {
		out[i] = int32(tr(e.ctx, int(p), e.scheme))
	}
	return out
}

func (e *FullSkyEnumerator) applyTransformThird(tr transform) []int32 {
	out := make([]int32, len(e.curThird))
	for i, p := range e.curThird {
		out[i] = int32(tr(e.ctx, int(p), e.scheme))
	}
	return out
}
