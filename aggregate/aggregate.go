// Package aggregate computes N-point correlation functions by streaming a
// two-point table, triangle list, or quadrilateral file against one or
// more field maps. Grounded on the source repository's
// calculate_twopt_correlation_function.cpp (two-point) and
// calculate_fourpt_correlation_function.cpp (four-point, including the
// masked variant and the quadrilateral-file nested-sum traversal); the
// three-point case follows the same pattern applied to a triangle.List.
package aggregate

import (
	"github.com/cjcopi/npointfunc/errs"
	"github.com/cjcopi/npointfunc/quadfile"
	"github.com/cjcopi/npointfunc/triangle"
	"github.com/cjcopi/npointfunc/twopt"
)

// TwoPoint computes C(bin) = <m(p1) m(p2)> over every distinct pair (p1,
// p2) recorded in table, each pair counted once.
func TwoPoint(m []float64, table *twopt.Table) (float64, error) {
	var c2, npair float64
	pixlist := table.PixelList()
	nmax := table.Nmax()
	for i := 0; i < table.Npix(); i++ {
		p1 := pixlist[i]
		var csum float64
		for j := 0; j < nmax; j++ {
			idx := table.Element(i, j)
			if idx == -1 {
				break
			}
			p2 := pixlist[idx]
			if p1 > p2 {
				continue
			}
			npair++
			csum += m[p2]
		}
		c2 += m[p1] * csum
	}
	if npair == 0 {
		return 0, errs.Wrapf(errs.ErrPrecondition, "aggregate: two-point bin has no pairs")
	}
	return c2 / npair, nil
}

// TwoPointMasked is TwoPoint with each map value weighted by a mask, and
// the pair count replaced by the sum of mask-weight products.
func TwoPointMasked(m, w []float64, table *twopt.Table) (float64, error) {
	var c2, wsum float64
	pixlist := table.PixelList()
	nmax := table.Nmax()
	for i := 0; i < table.Npix(); i++ {
		p1 := pixlist[i]
		var csum float64
		for j := 0; j < nmax; j++ {
			idx := table.Element(i, j)
			if idx == -1 {
				break
			}
			p2 := pixlist[idx]
			if p1 > p2 {
				continue
			}
			wsum += w[p1] * w[p2]
			csum += w[p2] * m[p2]
		}
		c2 += w[p1] * m[p1] * csum
	}
	if wsum == 0 {
		return 0, errs.Wrapf(errs.ErrPrecondition, "aggregate: two-point bin has no weighted pairs")
	}
	return c2 / wsum, nil
}

// ThreePoint computes C(bin) = <m(p1) m(p2) m(p3)> over every triangle in
// the list.
func ThreePoint(m []float64, list *triangle.List) (float64, error) {
	if list.Size() == 0 {
		return 0, errs.Wrapf(errs.ErrPrecondition, "aggregate: three-point bin has no triangles")
	}
	var c3 float64
	for j := 0; j < list.Size(); j++ {
		corners := list.Corners(j)
		c3 += m[corners[0]] * m[corners[1]] * m[corners[2]]
	}
	return c3 / float64(list.Size()), nil
}

// ThreePointMasked weights each corner's map value by its mask weight and
// normalizes by the summed weight product rather than the triangle count.
func ThreePointMasked(m, w []float64, list *triangle.List) (float64, error) {
	var c3, wsum float64
	for j := 0; j < list.Size(); j++ {
		corners := list.Corners(j)
		wp := w[corners[0]] * w[corners[1]] * w[corners[2]]
		c3 += wp * m[corners[0]] * m[corners[1]] * m[corners[2]]
		wsum += wp
	}
	if wsum == 0 {
		return 0, errs.Wrapf(errs.ErrPrecondition, "aggregate: three-point bin has no weighted triangles")
	}
	return c3 / wsum, nil
}

// FourPoint computes C(bin) = <m(p0) m(p1) m(p2) m(p3)> by walking the
// quadrilateral file once and accumulating the nested sum.
func FourPoint(m []float64, r *quadfile.Reader) (float64, error) {
	var c0 float64
	var nquad int
	for {
		pts, third, ok, err := r.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		var c3 float64
		for _, p3 := range third {
			c3 += m[p3]
		}
		nquad += len(third)
		c0 += m[pts[0]] * m[pts[1]] * m[pts[2]] * c3
	}
	if nquad == 0 {
		return 0, errs.Wrapf(errs.ErrPrecondition, "aggregate: four-point bin has no quadrilaterals")
	}
	return c0 / float64(nquad), nil
}

// FourPointMasked is FourPoint with each map value weighted by a mask, and
// the leaf count replaced by the summed weight product.
func FourPointMasked(m, w []float64, r *quadfile.Reader) (float64, error) {
	var c0, wquad float64
	for {
		pts, third, ok, err := r.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		var c3 float64
		for _, p3 := range third {
			c3 += w[p3] * m[p3]
		}
		wsum3 := 0.0
		for _, p3 := range third {
			wsum3 += w[p3]
		}
		w012 := w[pts[0]] * w[pts[1]] * w[pts[2]]
		wquad += w012 * wsum3
		c0 += w012 * m[pts[0]] * m[pts[1]] * m[pts[2]] * c3
	}
	if wquad == 0 {
		return 0, errs.Wrapf(errs.ErrPrecondition, "aggregate: four-point bin has no weighted quadrilaterals")
	}
	return c0 / wquad, nil
}

// FourPointBatch is FourPoint vectorized across a list of maps, reading the
// quadrilateral file only once.
func FourPointBatch(maps [][]float64, r *quadfile.Reader) ([]float64, error) {
	c0 := make([]float64, len(maps))
	var nquad int
	c3 := make([]float64, len(maps))
	for {
		pts, third, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		for mi := range maps {
			c3[mi] = 0
		}
		for _, p3 := range third {
			for mi, m := range maps {
				c3[mi] += m[p3]
			}
		}
		nquad += len(third)
		for mi, m := range maps {
			c0[mi] += m[pts[0]] * m[pts[1]] * m[pts[2]] * c3[mi]
		}
	}
	if nquad == 0 {
		return nil, errs.Wrapf(errs.ErrPrecondition, "aggregate: four-point bin has no quadrilaterals")
	}
	for mi := range c0 {
		c0[mi] /= float64(nquad)
	}
	return c0, nil
}
