package pixel

import "sort"

// Context is the immutable pixelization handle for one Nside: Npix, the
// NEST<->RING permutation, and the base-pixel-class assignment are all
// precomputed once at construction.
type Context struct {
	nside      int
	nestToRing []int32
	ringToNest []int32
	faceOfRing []int8
}

// NewContext builds the pixelization for the given Nside. Nside must be a
// positive integer (a power of two is conventional but not required by this
// implementation).
func NewContext(nside int) *Context {
	if nside <= 0 {
		panic("pixel: nside must be positive")
	}
	npix := 12 * nside * nside

	type entry struct {
		ringPix int
		face    int
		key     uint64
	}
	entries := make([]entry, 0, npix)
	pix := 0
	for ring := 1; ring < 4*nside; ring++ {
		length, _, _ := ringInfo(nside, ring)
		for iphi := 0; iphi < length; iphi++ {
			face := faceOfRingIphi(nside, ring, iphi, length)
			entries = append(entries, entry{pix, face, mortonKey(ring, iphi)})
			pix++
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].face != entries[j].face {
			return entries[i].face < entries[j].face
		}
		return entries[i].key < entries[j].key
	})

	nestToRing := make([]int32, npix)
	ringToNest := make([]int32, npix)
	faceOfRingArr := make([]int8, npix)
	for nestIdx, e := range entries {
		nestToRing[nestIdx] = int32(e.ringPix)
		ringToNest[e.ringPix] = int32(nestIdx)
		faceOfRingArr[e.ringPix] = int8(e.face)
	}
	return &Context{
		nside:      nside,
		nestToRing: nestToRing,
		ringToNest: ringToNest,
		faceOfRing: faceOfRingArr,
	}
}

func (c *Context) Nside() int { return c.nside }
func (c *Context) Npix() int  { return 12 * c.nside * c.nside }

// ToRing converts a pixel id from the given scheme to RING indexing.
func (c *Context) ToRing(pix int, scheme Scheme) int {
	if scheme == RING {
		return pix
	}
	return int(c.nestToRing[pix])
}

// ToNest converts a pixel id from the given scheme to NEST indexing.
func (c *Context) ToNest(pix int, scheme Scheme) int {
	if scheme == NEST {
		return pix
	}
	return int(c.ringToNest[pix])
}

// Convert reorders a pixel id from one scheme to another.
func (c *Context) Convert(pix int, from, to Scheme) int {
	if from == to {
		return pix
	}
	ringPix := c.ToRing(pix, from)
	if to == RING {
		return ringPix
	}
	return int(c.ringToNest[ringPix])
}

// PixToVec returns the unit vector at the centre of the given pixel.
func (c *Context) PixToVec(pix int, scheme Scheme) Vec3 {
	return pixToVecRing(c.nside, c.ToRing(pix, scheme))
}
