package mapio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cjcopi/npointfunc/pixel"
)

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := pixel.NewContext(2)
	m := Map{
		Nside:  2,
		Scheme: pixel.NEST,
		Values: make([]float64, ctx.Npix()),
	}
	for i := range m.Values {
		m.Values[i] = float64(i) * 1.5
	}

	path := filepath.Join(t.TempDir(), "map.bin")
	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Nside != m.Nside || got.Scheme != m.Scheme {
		t.Fatalf("Read() header = %+v, want Nside=%d Scheme=%v", got, m.Nside, m.Scheme)
	}
	if len(got.Values) != len(m.Values) {
		t.Fatalf("len(Values) = %d, want %d", len(got.Values), len(m.Values))
	}
	for i := range m.Values {
		if got.Values[i] != m.Values[i] {
			t.Errorf("Values[%d] = %v, want %v", i, got.Values[i], m.Values[i])
		}
	}
}

func TestReadRejectsBadVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte{9}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("Read() on bad version = nil error, want error")
	}
}

func TestGenerateGaussianFillsEveryPixel(t *testing.T) {
	ctx := pixel.NewContext(2)
	m := GenerateGaussian(ctx, pixel.NEST, 0, 1, 1)
	if len(m.Values) != ctx.Npix() {
		t.Fatalf("len(Values) = %d, want %d", len(m.Values), ctx.Npix())
	}
	allZero := true
	for _, v := range m.Values {
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Error("GenerateGaussian produced an all-zero map")
	}
}

func TestGenerateZCoordinateMatchesPixToVec(t *testing.T) {
	ctx := pixel.NewContext(2)
	m := GenerateZCoordinate(ctx, pixel.NEST)
	for p := 0; p < ctx.Npix(); p++ {
		want := ctx.PixToVec(p, pixel.NEST)[2]
		if m.Values[p] != want {
			t.Errorf("Values[%d] = %v, want %v", p, m.Values[p], want)
		}
	}
}
