// Package errs defines the error kinds the core recognizes
// (SPEC_FULL.md §7): codec, format, I/O, precondition, and configuration
// errors. I/O and codec errors are fatal; precondition errors are fatal,
// except that the aggregate package reports a bin with zero tuples as a
// precondition error which the commands log as a warning and print as 0.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrCodec marks a compression/decompression failure or a
	// decompressed-length mismatch.
	ErrCodec = errors.New("codec error")
	// ErrFormat marks an unsupported file version or a truncated
	// header/blob.
	ErrFormat = errors.New("format error")
	// ErrIO marks a failure to open, read, or write a file.
	ErrIO = errors.New("i/o error")
	// ErrPrecondition marks an Nside/scheme mismatch, an empty bin list,
	// a bin with zero tuples to aggregate, or no files matching a
	// sequential-file prefix.
	ErrPrecondition = errors.New("precondition error")
	// ErrConfig marks a missing or contradictory parameter-file key.
	ErrConfig = errors.New("configuration error")
)

// Wrap attaches kind to cause so that errors.Is(err, kind) succeeds while
// preserving the original message and any further wrapping via cause.
func Wrap(kind error, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

// Wrapf is Wrap with a formatted message in place of an existing cause.
func Wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", kind, fmt.Errorf(format, args...))
}
