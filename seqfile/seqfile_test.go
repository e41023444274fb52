package seqfile

import "testing"

func TestMakeFilename(t *testing.T) {
	got := MakeFilename("bin_", 7, 5, ".dat")
	want := "bin_00007.dat"
	if got != want {
		t.Errorf("MakeFilename() = %q, want %q", got, want)
	}
}

func TestSequentialFileListStopsAtGap(t *testing.T) {
	present := map[string]bool{
		"bin_00000.dat": true,
		"bin_00001.dat": true,
		"bin_00002.dat": true,
		// gap at 3
		"bin_00004.dat": true,
	}
	exists := func(path string) bool { return present[path] }

	got := SequentialFileList("bin_", 0, 1, 5, ".dat", exists)
	want := []string{"bin_00000.dat", "bin_00001.dat", "bin_00002.dat"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequentialFileListIncrement(t *testing.T) {
	present := map[string]bool{
		"q_00000.dat": true,
		"q_00002.dat": true,
		"q_00004.dat": true,
	}
	exists := func(path string) bool { return present[path] }

	got := SequentialFileList("q_", 0, 2, 5, ".dat", exists)
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
}

func TestRangeSequence(t *testing.T) {
	r := NewRange(1.0, 0.1)
	for i, want := range []float64{1.0, 1.1, 1.2} {
		got := r.Next()
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Next() #%d = %v, want %v", i, got, want)
		}
	}
	r.Reset()
	if got := r.Next(); got != 1.0 {
		t.Errorf("after Reset, Next() = %v, want 1.0", got)
	}
}
