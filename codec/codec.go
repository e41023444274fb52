// Package codec implements the uniform stream-oriented compression
// interface used transparently by the two-point table (SPEC_FULL.md §4.1):
// write_buffer/read_buffer, where the compressed length is never stored —
// a reader decompresses everything from the current stream position to
// end-of-file and fails if that does not produce exactly the requested
// number of bytes.
//
// Three variants are selectable at construction time and the choice is not
// recorded in the file; producers and consumers must agree out-of-band
// (SPEC_FULL.md §9, "Codec selection").
package codec

import (
	"io"

	"github.com/cjcopi/npointfunc/errs"
)

// Codec compresses and decompresses byte buffers for on-disk storage.
type Codec interface {
	// WriteBuffer compresses data and appends it to sink. The compressed
	// length is not recorded; the caller is responsible for framing the
	// blob (e.g. by writing it last in a file, or length-prefixing the
	// whole compressed-plus-everything-after region).
	WriteBuffer(sink io.Writer, data []byte) error

	// ReadBuffer decompresses every byte from the current position of
	// source to end-of-file and returns exactly nbytes of decompressed
	// data. It fails with errs.ErrCodec if the decompressed size does not
	// match nbytes.
	ReadBuffer(source io.Reader, nbytes int) ([]byte, error)
}

// Variant selects which Codec implementation New constructs.
type Variant uint8

const (
	// Deflate is the default variant: fast, moderate compression ratio.
	Deflate Variant = iota
	// Zstd is the "stronger but much slower" variant, standing in for the
	// source repository's LZMA wrapper — see DESIGN.md for why zstd at
	// its best-compression level was chosen over an LZMA binding.
	Zstd
	// Identity performs no compression; reads and writes are raw copies.
	Identity
)

func (v Variant) String() string {
	switch v {
	case Deflate:
		return "deflate"
	case Zstd:
		return "zstd"
	case Identity:
		return "identity"
	default:
		return "unknown"
	}
}

// New constructs the Codec for the requested variant.
func New(v Variant) (Codec, error) {
	switch v {
	case Deflate:
		return NewDeflateCodec(), nil
	case Zstd:
		return NewZstdCodec(), nil
	case Identity:
		return NewIdentityCodec(), nil
	default:
		return nil, errs.Wrapf(errs.ErrConfig, "codec: unknown variant %d", v)
	}
}

func mismatchErr(got, want int) error {
	return errs.Wrapf(errs.ErrCodec, "decompressed %d bytes, want %d", got, want)
}
