package heap

// coalesce merges bp with any free neighbours. bp's header/footer must
// already be written with ALLOC=0 and its correct PREV_ALLOC bit; bp itself
// must not yet be on any free list. Returns the payload pointer of the
// surviving (possibly merged) block, now inserted into the free-list index.
//
// The four cases follow directly from the two boundary checks: is the
// predecessor free, is the successor free.
func (h *Heap) coalesce(bp int32) int32 {
	data := h.data
	prevIsFree := !prevAllocOf(data, bp)
	next := nextBlock(data, bp)
	nextIsFree := !allocOf(data, next)

	switch {
	case !prevIsFree && !nextIsFree:
		// Neither neighbour is free: next's PREV_ALLOC must now clear since
		// bp is free, but bp itself needs no merge.
		clearPrevAlloc(data, next)
		h.stats.CoalesceNone++
		h.freeList.insert(h, bp)
		return bp

	case !prevIsFree && nextIsFree:
		nextSize := sizeOf(data, next)
		h.freeList.remove(h, next, h.freeList.classOf(nextSize))
		newSize := sizeOf(data, bp) + nextSize
		setHeader(data, bp, newSize, false, prevAllocOf(data, bp))
		setFooter(data, bp)
		h.stats.CoalesceForward++
		h.freeList.insert(h, bp)
		return bp

	case prevIsFree && !nextIsFree:
		prev := prevBlock(data, bp)
		prevSize := sizeOf(data, prev)
		h.freeList.remove(h, prev, h.freeList.classOf(prevSize))
		newSize := prevSize + sizeOf(data, bp)
		setHeader(data, prev, newSize, false, prevAllocOf(data, prev))
		setFooter(data, prev)
		clearPrevAlloc(data, next)
		h.stats.CoalesceBackward++
		h.freeList.insert(h, prev)
		return prev

	default: // both free
		prev := prevBlock(data, bp)
		prevSize := sizeOf(data, prev)
		nextSize := sizeOf(data, next)
		h.freeList.remove(h, prev, h.freeList.classOf(prevSize))
		h.freeList.remove(h, next, h.freeList.classOf(nextSize))
		newSize := prevSize + sizeOf(data, bp) + nextSize
		setHeader(data, prev, newSize, false, prevAllocOf(data, prev))
		setFooter(data, prev)
		h.stats.CoalesceBoth++
		h.freeList.insert(h, prev)
		return prev
	}
}
