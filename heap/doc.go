// Package heap implements a general-purpose dynamic memory allocator: a
// single contiguous region of bytes, carved into variable-sized blocks via
// boundary-tag headers and footers, with segregated free lists for
// placement and four-case coalescing to keep fragmentation down.
//
// # Overview
//
// A Heap owns one AddressProvider, which is the only thing it asks to grow.
// Everything else — splitting, coalescing, free-list bookkeeping — happens
// entirely inside the region the provider hands back, using plain int32
// offsets rather than pointers so the same logic works whether the region
// is backed by a Go slice or an mmap'd range.
//
// # Block layout
//
//	[header][payload ... ][footer]   (free block)
//	[header][payload ...         ]   (allocated block, no footer)
//
// The header (and footer, when present) pack a block's size and two flag
// bits into one 32-bit word: ALLOC and PREV_ALLOC. Dropping the footer from
// allocated blocks (the "footer optimization") and instead tracking a
// predecessor's allocation state in its successor's header is what lets an
// allocated block carry one word of overhead instead of two. The minimum
// block size stays at four words (16 bytes): the header, two free-list link
// slots and the footer a free block needs.
//
// # Placement
//
// Allocate asks the free-list index for a block at least as big as the
// request, using a bounded best-fit scan: it looks at up to Config.MaxFit
// candidates in the smallest size class that could fit and takes the
// tightest one seen, rather than scanning every block in every class. On a
// miss it grows the heap by Config.ChunkSize (or the request size, if
// larger) and carves the new block out of whatever that growth produced.
//
// # Usage
//
//	ap := heap.NewSliceProvider(64 << 20)
//	h, err := heap.New(ap, heap.DefaultConfig)
//	p, err := h.Allocate(128)
//	// ... use p ...
//	err = h.Deallocate(p)
//
// # Thread safety
//
// A Heap is not safe for concurrent use. Callers that need concurrent
// allocation should serialize access to a shared Heap themselves, the same
// way a single malloc arena expects external locking.
package heap
