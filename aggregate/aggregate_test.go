package aggregate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cjcopi/npointfunc/pixel"
	"github.com/cjcopi/npointfunc/quadfile"
	"github.com/cjcopi/npointfunc/twopt"
)

func TestTwoPointConstantMap(t *testing.T) {
	pixlist := []int32{0, 1, 2, 3}
	table := twopt.New(4, pixel.NEST, pixlist, 0.5)
	table.AddPair(0, 1)
	table.AddPair(2, 3)

	m := []float64{1, 1, 1, 1}
	c2, err := TwoPoint(m, table)
	require.NoError(t, err)
	require.Equal(t, 1.0, c2)
}

func TestTwoPointNoPairsIsError(t *testing.T) {
	pixlist := []int32{0, 1}
	table := twopt.New(4, pixel.NEST, pixlist, 0.5)
	_, err := TwoPoint([]float64{1, 1}, table)
	require.Error(t, err)
}

func TestTwoPointMaskedIdentityMaskMatchesUnmasked(t *testing.T) {
	pixlist := []int32{0, 1, 2, 3}
	table := twopt.New(4, pixel.NEST, pixlist, 0.5)
	table.AddPair(0, 1)
	table.AddPair(0, 2)
	table.AddPair(1, 3)

	m := []float64{2, 3, 5, 7}
	w := []float64{1, 1, 1, 1}

	unmasked, err := TwoPoint(m, table)
	require.NoError(t, err)
	masked, err := TwoPointMasked(m, w, table)
	require.NoError(t, err)
	require.InDelta(t, unmasked, masked, 1e-12)
}

func TestFourPointConstantMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quads.bin")
	w := quadfile.NewWriter(4, pixel.NEST, 0.5)
	w.AddGroup([3]int32{0, 1, 2}, []int32{3, 4})
	w.AddGroup([3]int32{0, 1, 5}, []int32{6})
	require.NoError(t, w.Close(path))

	r, err := quadfile.Open(path)
	require.NoError(t, err)
	defer r.Close()

	m := make([]float64, 10)
	for i := range m {
		m[i] = 1
	}
	c4, err := FourPoint(m, r)
	require.NoError(t, err)
	require.Equal(t, 1.0, c4)
}

func TestFourPointBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quads.bin")
	w := quadfile.NewWriter(4, pixel.NEST, 0.5)
	w.AddGroup([3]int32{0, 1, 2}, []int32{3})
	require.NoError(t, w.Close(path))

	r, err := quadfile.Open(path)
	require.NoError(t, err)
	defer r.Close()

	m1 := []float64{1, 1, 1, 1}
	m2 := []float64{2, 2, 2, 2}
	got, err := FourPointBatch([][]float64{m1, m2}, r)
	require.NoError(t, err)
	require.InDelta(t, 1.0, got[0], 1e-12)
	require.InDelta(t, 16.0, got[1], 1e-12)
}
