package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	variants := []Variant{Deflate, Zstd, Identity}
	buffers := [][]byte{
		{},
		[]byte("a"),
		bytes.Repeat([]byte("hello world "), 100),
		randomBytes(4096),
	}

	for _, v := range variants {
		c, err := New(v)
		require.NoError(t, err)

		for _, data := range buffers {
			var buf bytes.Buffer
			require.NoError(t, c.WriteBuffer(&buf, data))

			got, err := c.ReadBuffer(&buf, len(data))
			require.NoError(t, err)
			require.Equal(t, data, got)
		}
	}
}

func TestReadBufferLengthMismatch(t *testing.T) {
	c := NewIdentityCodec()
	var buf bytes.Buffer
	require.NoError(t, c.WriteBuffer(&buf, []byte("short")))

	_, err := c.ReadBuffer(&buf, 100)
	require.Error(t, err)
}

func TestNewUnknownVariant(t *testing.T) {
	_, err := New(Variant(99))
	require.Error(t, err)
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}
