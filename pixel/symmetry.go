package pixel

// ShiftByBasePixel applies the 90-degree azimuthal rotation used by the
// full-sky quadrilateral symmetry driver (SPEC_FULL.md §4.5.1). Every ring
// length is a multiple of 4, so rotating the within-ring index by a quarter
// turn is exact on every ring simultaneously.
func (c *Context) ShiftByBasePixel(pix int, scheme Scheme) int {
	ringPix := c.ToRing(pix, scheme)
	ring, iphi := pixToRingIphi(c.nside, ringPix)
	length, _, _ := ringInfo(c.nside, ring)
	out := ringIphiToPix(c.nside, ring, iphi+length/4)
	return c.Convert(out, RING, scheme)
}

// ReflectThroughEquator maps z -> -z, preserving the within-ring index.
func (c *Context) ReflectThroughEquator(pix int, scheme Scheme) int {
	ringPix := c.ToRing(pix, scheme)
	ring, iphi := pixToRingIphi(c.nside, ringPix)
	mirrorRing := 4*c.nside - ring
	out := ringIphiToPix(c.nside, mirrorRing, iphi)
	return c.Convert(out, RING, scheme)
}

// ReflectThroughZAxis maps phi -> -phi within the same ring.
func (c *Context) ReflectThroughZAxis(pix int, scheme Scheme) int {
	ringPix := c.ToRing(pix, scheme)
	ring, iphi := pixToRingIphi(c.nside, ringPix)
	length, _, kshift := ringInfo(c.nside, ring)
	out := ringIphiToPix(c.nside, ring, length-1-kshift-iphi)
	return c.Convert(out, RING, scheme)
}

// BasePixelClassA returns every pixel of base pixel 0 (Nside^2 of them, the
// north polar cap face), the canonical "class A" root from which the
// shift and equator-reflection transforms reach the rest of the north
// polar band (SPEC_FULL.md §4.5.1's table).
func (c *Context) BasePixelClassA(scheme Scheme) []int {
	return c.basePixelList(0, scheme)
}

// BasePixelClassB returns every pixel of base pixel 4 (Nside^2 of them, an
// equatorial face), the canonical "class B" root from which all four
// transform families reach the rest of the equatorial belt and south
// polar band.
func (c *Context) BasePixelClassB(scheme Scheme) []int {
	return c.basePixelList(4, scheme)
}

func (c *Context) basePixelList(face int, scheme Scheme) []int {
	nside2 := c.nside * c.nside
	out := make([]int, nside2)
	for i := range out {
		nestPix := face*nside2 + i
		out[i] = c.Convert(nestPix, NEST, scheme)
	}
	return out
}
