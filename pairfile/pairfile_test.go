package pairfile

import (
	"path/filepath"
	"testing"
)

func TestAppendReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.bin")

	f := New(path, 4) // tiny capacity to force multiple flushes
	if err := f.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	type pair struct{ i, j int32 }
	want := make([]pair, 0, 23)
	for k := int32(0); k < 23; k++ {
		want = append(want, pair{k, k * 2})
	}
	for _, p := range want {
		if err := f.Append(p.i, p.j); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := New(path, 4)
	if err := r.OpenRead(); err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer r.Close()

	got := make([]pair, 0, len(want))
	for {
		i, j, ok, err := r.ReadNextPair()
		if err != nil {
			t.Fatalf("ReadNextPair: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, pair{i, j})
	}

	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for k := range want {
		if got[k] != want[k] {
			t.Errorf("pair %d: got %+v, want %+v", k, got[k], want[k])
		}
	}
}

func TestReadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")

	f := New(path, 4)
	if err := f.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := New(path, 4)
	if err := r.OpenRead(); err != nil {
		t.Fatalf("OpenRead: %v", err)
	}
	defer r.Close()

	_, _, ok, err := r.ReadNextPair()
	if err != nil {
		t.Fatalf("ReadNextPair: %v", err)
	}
	if ok {
		t.Fatal("expected no pairs from an empty file")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.bin")

	f := New(path, 4)
	if err := f.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := f.Append(1, 2); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
