package twopt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cjcopi/npointfunc/codec"
	"github.com/cjcopi/npointfunc/pixel"
)

func TestWriteReadRoundTrip(t *testing.T) {
	pixlist := []int32{5, 12, 30, 47}
	table := New(8, pixel.NEST, pixlist, 0.25)

	table.AddPair(0, 1)
	table.AddPair(0, 2)
	table.Add(3, 0)

	path := filepath.Join(t.TempDir(), "bin.twopt")
	require.NoError(t, table.WriteFile(path, codec.Deflate))

	got, err := ReadFile(path, codec.Deflate)
	require.NoError(t, err)

	require.Equal(t, table.BinValue(), got.BinValue())
	require.Equal(t, uint64(8), got.Nside())
	require.Equal(t, pixel.NEST, got.Scheme())
	require.Equal(t, pixlist, got.PixelList())
	require.Equal(t, 2, got.Nmax())

	// Row 0: paired with 1 and 2.
	require.ElementsMatch(t, []int32{1, 2}, []int32{got.Element(0, 0), got.Element(0, 1)})
	// Row 1: paired with 0, padded with -1.
	require.Equal(t, int32(0), got.Element(1, 0))
	require.Equal(t, int32(-1), got.Element(1, 1))
	// Row 3: received one entry from Add(3, 0).
	require.Equal(t, int32(0), got.Element(3, 0))
	require.Equal(t, int32(-1), got.Element(3, 1))
}

func TestResetClearsRowsOnly(t *testing.T) {
	pixlist := []int32{1, 2}
	table := New(4, pixel.RING, pixlist, -0.5)
	table.AddPair(0, 1)
	table.Reset()
	require.Equal(t, 0, table.Nmax())
	require.Equal(t, pixlist, table.PixelList())
	require.Equal(t, -0.5, table.BinValue())
}

func TestReadFileRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.twopt")
	require.NoError(t, os.WriteFile(path, []byte{7}, 0o644))

	_, err := ReadFile(path, codec.Deflate)
	require.Error(t, err)
}
