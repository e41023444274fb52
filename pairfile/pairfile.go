// Package pairfile implements the buffered pair binary scratch file used
// during pair binning (SPEC_FULL.md §4.2): a temporary, host-endian,
// unversioned sequence of (i, j) pixel-pair integers, written and read
// through a large in-memory batch buffer. Grounded directly on the source
// repository's buffered_pair_binary_file.h.
package pairfile

import (
	"encoding/binary"
	"os"

	"github.com/cjcopi/npointfunc/errs"
)

// DefaultCapacity is the default number of pairs buffered in memory before
// a flush, matching the source's buf_pairs = 1000000 default.
const DefaultCapacity = 1_000_000

// File is a buffered scratch file of (i, j) int32 pixel-pair values. A File
// is either being written or being read, never both concurrently on the
// same handle.
type File struct {
	path string
	fd   *os.File

	capacityPairs int
	writeBuf      []int32 // length 2*capacityPairs; nWrite valid entries
	nWrite        int

	readBuf []int32 // refilled from disk on demand
	nRead   int     // cursor into readBuf
	nBuf    int     // valid entries in readBuf
	nTotal  int64   // total int32 values remaining in the file at OpenRead time
}

// New constructs a File bound to path with the given pair-buffer capacity.
// capacityPairs <= 0 selects DefaultCapacity.
func New(path string, capacityPairs int) *File {
	if capacityPairs <= 0 {
		capacityPairs = DefaultCapacity
	}
	return &File{
		path:          path,
		capacityPairs: capacityPairs,
		writeBuf:      make([]int32, 2*capacityPairs),
	}
}

// Create truncates and opens the file for writing.
func (f *File) Create() error {
	if f.fd != nil {
		f.fd.Close()
	}
	fd, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	f.fd = fd
	f.nWrite = 0
	return nil
}

// Append enqueues a pair, flushing to disk when the buffer fills.
func (f *File) Append(i, j int32) error {
	if f.nWrite >= len(f.writeBuf) {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	f.writeBuf[f.nWrite] = i
	f.writeBuf[f.nWrite+1] = j
	f.nWrite += 2
	return nil
}

// Flush writes the buffered pairs to disk.
func (f *File) Flush() error {
	if f.nWrite == 0 {
		return nil
	}
	if err := binary.Write(f.fd, binary.NativeEndian, f.writeBuf[:f.nWrite]); err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	f.nWrite = 0
	return nil
}

// Close flushes and closes the file; safe to call repeatedly.
func (f *File) Close() error {
	if f.fd == nil {
		return nil
	}
	if err := f.Flush(); err != nil {
		f.fd.Close()
		f.fd = nil
		return err
	}
	err := f.fd.Close()
	f.fd = nil
	if err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	return nil
}

// OpenRead flushes any pending writes, then reopens the file for reading.
func (f *File) OpenRead() error {
	if f.fd != nil {
		if err := f.Flush(); err != nil {
			return err
		}
		f.fd.Close()
	}
	fd, err := os.Open(f.path)
	if err != nil {
		return errs.Wrap(errs.ErrIO, err)
	}
	info, err := fd.Stat()
	if err != nil {
		fd.Close()
		return errs.Wrap(errs.ErrIO, err)
	}
	f.fd = fd
	f.nTotal = info.Size() / 4
	f.nRead = 0
	f.nBuf = 0
	if f.readBuf == nil {
		f.readBuf = make([]int32, 2*f.capacityPairs)
	}
	return nil
}

// ReadNextPair yields the next pair, refilling the read buffer from disk as
// needed. ok is false once the file is exhausted.
func (f *File) ReadNextPair() (i, j int32, ok bool, err error) {
	if f.nRead >= f.nBuf {
		remaining := f.nTotal
		if remaining > int64(len(f.readBuf)) {
			remaining = int64(len(f.readBuf))
		}
		if remaining == 0 {
			return 0, 0, false, nil
		}
		buf := f.readBuf[:remaining]
		if err := binary.Read(f.fd, binary.NativeEndian, buf); err != nil {
			return 0, 0, false, errs.Wrap(errs.ErrIO, err)
		}
		f.nTotal -= remaining
		f.nBuf = int(remaining)
		f.nRead = 0
	}
	i = f.readBuf[f.nRead]
	j = f.readBuf[f.nRead+1]
	f.nRead += 2
	return i, j, true, nil
}

// Path returns the file's path.
func (f *File) Path() string { return f.path }

// Remove deletes the file from disk (used for the pair-binning driver's
// optional scratch-file cleanup).
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.ErrIO, err)
	}
	return nil
}
