package heap

import "github.com/relyt871/heapkit/internal/wire"

// Block layout primitives. Every function here takes the backing byte slice
// and a payload pointer bp (an offset into that slice, not an address) and
// is pure: no allocator state, no side effects beyond the single word it is
// asked to touch. Everything above this file is built by composing these.
//
//	header(bp) = bp - W          footer(bp) = bp + size(bp) - D
//
// bp always points one word past its own header, matching the classic
// convention of returning payload pointers from malloc.

func header(bp int32) int32 {
	return bp - wordSize
}

func footer(bp, size int32) int32 {
	return bp + size - dsize
}

func sizeOf(data []byte, bp int32) int32 {
	return int32(wire.ReadU32(data, int(header(bp))) & sizeMask)
}

func allocOf(data []byte, bp int32) bool {
	return wire.ReadU32(data, int(header(bp)))&allocBit != 0
}

func prevAllocOf(data []byte, bp int32) bool {
	return wire.ReadU32(data, int(header(bp)))&prevAllocBit != 0
}

// nextBlock returns the payload pointer of the block immediately following
// bp. Valid for any block, allocated or free.
func nextBlock(data []byte, bp int32) int32 {
	return bp + sizeOf(data, bp)
}

// prevBlock returns the payload pointer of the block immediately preceding
// bp. Only meaningful when prevAllocOf(data, bp) is false: an allocated
// predecessor keeps no footer, so its size cannot be recovered by walking
// backward.
func prevBlock(data []byte, bp int32) int32 {
	predFooter := bp - dsize
	size := int32(wire.ReadU32(data, int(predFooter)) & sizeMask)
	return bp - size
}

func setHeader(data []byte, bp, size int32, alloc, prevAlloc bool) {
	wire.PutU32(data, int(header(bp)), pack(size, alloc, prevAlloc))
}

// setFooter mirrors bp's current header word into its footer slot. Callers
// always setHeader first; the footer optimization means this should only be
// called for free blocks (I6 requires header == footer there), but the
// mirroring logic itself doesn't care which.
func setFooter(data []byte, bp int32) {
	h := wire.ReadU32(data, int(header(bp)))
	size := int32(h & sizeMask)
	wire.PutU32(data, int(footer(bp, size)), h)
}

func setPrevAlloc(data []byte, bp int32) {
	off := int(header(bp))
	wire.PutU32(data, off, wire.ReadU32(data, off)|prevAllocBit)
}

func clearPrevAlloc(data []byte, bp int32) {
	off := int(header(bp))
	wire.PutU32(data, off, wire.ReadU32(data, off)&^prevAllocBit)
}
