package codec

import (
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/cjcopi/npointfunc/errs"
)

// DeflateCodec is the default compression variant (SPEC_FULL.md §4.1a),
// grounded on the source repository's ZLIB_Wrapper.h: write_buffer
// compresses and writes only the compressed bytes (no length prefix),
// read_buffer decompresses everything from the current stream position to
// end-of-file. klauspost/compress/flate stands in for zlib's deflate/inflate
// since the pack's dependency surface is pure Go.
type DeflateCodec struct {
	level int
}

var _ Codec = DeflateCodec{}

// NewDeflateCodec constructs the default-level deflate codec, matching the
// source's fixed compression_level = 6.
func NewDeflateCodec() DeflateCodec {
	return DeflateCodec{level: 6}
}

func (c DeflateCodec) WriteBuffer(sink io.Writer, data []byte) error {
	w, err := flate.NewWriter(sink, c.level)
	if err != nil {
		return errs.Wrap(errs.ErrCodec, err)
	}
	if _, err := w.Write(data); err != nil {
		return errs.Wrap(errs.ErrCodec, err)
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(errs.ErrCodec, err)
	}
	return nil
}

func (c DeflateCodec) ReadBuffer(source io.Reader, nbytes int) ([]byte, error) {
	r := flate.NewReader(source)
	defer r.Close()
	buf := make([]byte, nbytes)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errs.Wrap(errs.ErrCodec, err)
	}
	if n != nbytes {
		return nil, mismatchErr(n, nbytes)
	}
	return buf, nil
}
