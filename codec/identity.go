package codec

import (
	"io"

	"github.com/cjcopi/npointfunc/errs"
)

// IdentityCodec writes and reads raw, uncompressed bytes. It is the direct
// analogue of the source repository's No_Compression_Wrapper.h.
type IdentityCodec struct{}

var _ Codec = IdentityCodec{}

func NewIdentityCodec() IdentityCodec { return IdentityCodec{} }

func (IdentityCodec) WriteBuffer(sink io.Writer, data []byte) error {
	_, err := sink.Write(data)
	if err != nil {
		return errs.Wrap(errs.ErrCodec, err)
	}
	return nil
}

func (IdentityCodec) ReadBuffer(source io.Reader, nbytes int) ([]byte, error) {
	buf := make([]byte, nbytes)
	n, err := io.ReadFull(source, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, errs.Wrap(errs.ErrCodec, err)
	}
	if n != nbytes {
		return nil, mismatchErr(n, nbytes)
	}
	return buf, nil
}
