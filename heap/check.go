package heap

import (
	"fmt"

	"github.com/relyt871/heapkit/internal/wire"
)

// Stats accumulates allocator activity counters, grounded in the kind of
// per-operation bookkeeping malloc implementations use to tune placement
// and growth policy.
type Stats struct {
	AllocCalls     int
	AllocFastPath  int // satisfied without growing the heap
	AllocSlowPath  int // satisfied only after a Heap Extender call
	FreeCalls      int
	BytesAllocated int64
	BytesFreed     int64
	SplitCount     int

	CoalesceNone     int // neither neighbour was free
	CoalesceForward  int
	CoalesceBackward int
	CoalesceBoth     int

	GrowCalls int
	GrowBytes int64
}

// Stats returns a snapshot of the heap's running counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// BlockInfo describes one block for introspection tools: size, allocation
// state, and offset. It's a read-only snapshot; mutating it has no effect
// on the heap.
type BlockInfo struct {
	Offset int32
	Size   int32
	Alloc  bool
}

// Blocks walks the heap and returns every block from the first real block
// through (but not including) the epilogue, in address order.
func (h *Heap) Blocks() []BlockInfo {
	data := h.data
	_, hi := h.ap.Bounds()

	var blocks []BlockInfo
	for bp := nextBlock(data, h.base); bp+wordSize <= hi; {
		size := sizeOf(data, bp)
		if size == 0 {
			break
		}
		blocks = append(blocks, BlockInfo{Offset: bp, Size: size, Alloc: allocOf(data, bp)})
		bp = nextBlock(data, bp)
	}
	return blocks
}

// Violation describes a single invariant breach found by Validate.
type Violation struct {
	Code   string
	Detail string
	Offset int32
}

func (v Violation) String() string {
	return fmt.Sprintf("%s @%d: %s", v.Code, v.Offset, v.Detail)
}

// Validate walks the heap from the prologue to the epilogue and checks
// every structural invariant: size/alignment sanity, header/footer
// agreement on free blocks, PREV_ALLOC consistency, absence of adjacent
// free blocks, and agreement between the free lists and blocks' own ALLOC
// bits. It never panics on a malformed heap; it reports and keeps going
// where it safely can.
func (h *Heap) Validate() []Violation {
	data := h.data
	_, hi := h.ap.Bounds()

	var violations []Violation
	report := func(code, detail string, off int32) {
		violations = append(violations, Violation{code, detail, off})
	}

	onList := make(map[int32]bool)
	for cls, head := range h.freeList.heads {
		seen := make(map[int32]bool)
		for bp := head; bp != 0; bp = getNextFree(data, h.base, bp) {
			if seen[bp] {
				report("I5", "free list cycle detected", bp)
				break
			}
			seen[bp] = true
			onList[bp] = true
			if allocOf(data, bp) {
				report("I5", fmt.Sprintf("block on free list class %d has ALLOC=1", cls), bp)
			}
			if h.freeList.classOf(sizeOf(data, bp)) != cls {
				report("I5", fmt.Sprintf("block belongs to a different size class than list %d", cls), bp)
			}
		}
	}

	bp := h.base
	prevFree := false
	for {
		if header(bp)+wordSize > hi {
			report("I2", "walk ran past the heap's high bound without reaching the epilogue", bp)
			break
		}
		size := sizeOf(data, bp)
		if size == 0 {
			if !allocOf(data, bp) {
				report("I7", "epilogue has ALLOC=0", bp)
			}
			break
		}
		if size < minBlock || size%dsize != 0 {
			report("I1", fmt.Sprintf("block size %d is not a valid multiple of %d >= %d", size, dsize, minBlock), bp)
			break
		}
		next := nextBlock(data, bp)
		if header(next)+wordSize > hi {
			report("I2", fmt.Sprintf("block size %d runs past the heap's high bound", size), bp)
			break
		}
		if bp%alignment != 0 {
			report("I1", "payload pointer is not D-aligned", bp)
		}

		alloc := allocOf(data, bp)
		if !alloc {
			if prevFree {
				report("I4", "two free blocks are adjacent without having coalesced", bp)
			}
			hdr := header(bp)
			ftr := footer(bp, size)
			if ftr+wordSize > hi {
				report("I6", "footer falls outside the heap", bp)
			} else {
				hv := wire.ReadU32(data, int(hdr))
				fv := wire.ReadU32(data, int(ftr))
				if hv != fv {
					report("I6", "header and footer words disagree", bp)
				}
			}
			if !onList[bp] {
				report("I5", "free block is not reachable from any free list", bp)
			}
		}

		if prevAllocOf(data, next) == !alloc {
			// next's PREV_ALLOC should equal this block's own ALLOC bit.
			report("I3", "PREV_ALLOC bit of next block disagrees with this block's ALLOC bit", bp)
		}

		prevFree = !alloc
		bp = next
	}

	return violations
}
