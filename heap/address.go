package heap

import "errors"

// AddressProvider is the heap's sole channel to the outside world for
// growth. It hands out a single contiguous, growable region of memory and
// guarantees that bytes already returned keep their address for the life
// of the provider: a block pointer computed today stays valid after a
// later Extend, so the allocator never needs to chase moved memory.
//
// Real allocators get this guarantee from the OS (brk only appends pages;
// mmap'd regions don't relocate once mapped). The implementations here
// reproduce it by reserving their maximum size up front rather than
// growing an ordinary Go slice, which Go may reallocate and move.
type AddressProvider interface {
	// Extend grows the region by n bytes and returns the offset of the
	// first newly available byte. The new bytes read as zero.
	Extend(n int) (int32, error)

	// Bounds reports the region's current [lo, hi) extent.
	Bounds() (lo, hi int32)

	// Bytes returns the region's current contents. The returned slice is
	// shared, not copied, and its length tracks Bounds(); it stays valid
	// (addresses don't move) across later Extend calls.
	Bytes() []byte
}

// ErrAddressSpaceExhausted is returned by an AddressProvider when Extend
// would grow the region past the capacity it was constructed with.
var ErrAddressSpaceExhausted = errors.New("heap: address provider has no more space to extend into")
