package heap

import "errors"

var (
	// ErrNoSpace is returned when no free block fits a request and the
	// address provider can't grow far enough to satisfy it either.
	ErrNoSpace = errors.New("heap: out of space")

	// ErrBadRequest is returned when a pointer falls inside the heap's
	// backing store at an offset that is not D-aligned, so it cannot be a
	// block this heap handed out, e.g. p[1:] of a valid allocation.
	ErrBadRequest = errors.New("heap: pointer is not a block boundary")

	// ErrInvalidPointer is returned when Deallocate or Reallocate is
	// handed a slice that didn't come from this heap's Allocate at all,
	// e.g. one backed by a different array entirely.
	ErrInvalidPointer = errors.New("heap: pointer was not issued by this heap")

	// ErrCorruptHeap is returned by Validate's callers when they choose to
	// treat any violation as fatal.
	ErrCorruptHeap = errors.New("heap: internal invariant violated")
)
