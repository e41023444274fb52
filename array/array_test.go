package array

import (
	"sort"
	"testing"
)

func boolSliceEq(xs, ys []bool) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if xs[i] != ys[i] {
			return false
		}
	}
	return true
}

func TestGreater(t *testing.T) {
	xs, x0 := []float64{1, 2, 4, 3, 5}, 3.0
	res := []bool{false, false, true, false, true}

	ok := Greater(xs, x0)
	if !boolSliceEq(ok, res) {
		t.Errorf("Greater(%g, %g) = %v, not %v.", xs, x0, ok, res)
	}

	out := make([]bool, 5)
	ok = Greater(xs, x0, out)
	if !boolSliceEq(out, res) || !boolSliceEq(out, ok) {
		t.Errorf("Greater(%g, %g) = %v, not %v.", xs, x0, ok, res)
	}
}

func TestShellSort(t *testing.T) {
	xs := []float64{5, 3, 1, 4, 2, 0, 9, 8, 7, 6}
	ShellSort(xs)
	if !sort.Float64sAreSorted(xs) {
		t.Errorf("ShellSort(%v) left the slice unsorted: %v", xs, xs)
	}
}
