// Package seqfile discovers and names sequentially numbered per-bin
// scratch and output files (two-point tables, quadrilateral lists).
// Grounded on the source repository's Npoint_Functions_Utils.h
// (make_filename, get_sequential_file_list, myRange).
package seqfile

import "fmt"

// MakeFilename builds a zero-padded numbered filename from a prefix,
// number, digit width, and suffix. The prefix must already include any
// separator (e.g. "bin_") and the suffix its leading dot.
func MakeFilename(prefix string, num, digits int, suffix string) string {
	return fmt.Sprintf("%s%0*d%s", prefix, digits, num, suffix)
}

// Exists reports whether a file can be opened for reading; seqfile depends
// on an injected existence check so it does not import the filesystem
// package directly, matching the teacher's preference for narrow package
// boundaries.
type Exists func(path string) bool

// SequentialFileList returns every existing file matching
// MakeFilename(prefix, n, digits, suffix) for n = start, start+increment,
// ... stopping at the first gap.
func SequentialFileList(prefix string, start, increment, digits int, suffix string, exists Exists) []string {
	var files []string
	for n := start; ; n += increment {
		name := MakeFilename(prefix, n, digits, suffix)
		if !exists(name) {
			break
		}
		files = append(files, name)
	}
	return files
}

// Range generates a sequence of values start, start+delta, start+2*delta,
// ... one call at a time, mirroring the original's stateful myRange
// functor. It is used to walk bin-centre values without materializing the
// whole sequence up front.
type Range struct {
	start, delta, next float64
}

// NewRange constructs a Range starting at start and advancing by delta on
// each call to Next.
func NewRange(start, delta float64) *Range {
	return &Range{start: start, delta: delta, next: start}
}

// Next returns the next value in the range and advances it.
func (r *Range) Next() float64 {
	v := r.next
	r.next += r.delta
	return v
}

// Reset returns the range to its starting value.
func (r *Range) Reset() {
	r.next = r.start
}
