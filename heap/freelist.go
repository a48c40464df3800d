package heap

import "github.com/relyt871/heapkit/internal/wire"

// In-band free-list links. A free block's first two payload words are
// repurposed as prev/next pointers while it sits on a free list; the
// pointers are stored relative to the heap's base so they round-trip
// through a plain int32 regardless of where the backing store lives.
//
// A stored value of 0 means "no link" (base itself is never a valid free
// block, since it sits inside or before the prologue).

func relOff(base, bp int32) uint32 {
	if bp == 0 {
		return 0
	}
	return uint32(bp - base)
}

func absOff(base int32, rel uint32) int32 {
	if rel == 0 {
		return 0
	}
	return base + int32(rel)
}

func getPrevFree(data []byte, base, bp int32) int32 {
	return absOff(base, wire.ReadU32(data, int(bp)))
}

func getNextFree(data []byte, base, bp int32) int32 {
	return absOff(base, wire.ReadU32(data, int(bp+wordSize)))
}

func setPrevFree(data []byte, base, bp, v int32) {
	wire.PutU32(data, int(bp), relOff(base, v))
}

func setNextFree(data []byte, base, bp, v int32) {
	wire.PutU32(data, int(bp+wordSize), relOff(base, v))
}

// freeListIndex holds one LIFO free list per size class. Lists are headed
// by a payload pointer (0 = empty) and linked in-band via the helpers
// above, so the index itself carries no per-block allocation of its own.
type freeListIndex struct {
	table *sizeClassTable
	heads []int32
}

func newFreeListIndex(table *sizeClassTable) *freeListIndex {
	return &freeListIndex{table: table, heads: make([]int32, table.numClasses())}
}

func (fl *freeListIndex) classOf(size int32) int {
	return fl.table.classOf(size)
}

func (fl *freeListIndex) numClasses() int {
	return len(fl.heads)
}

// insert pushes bp onto the head of the list for its current size. Callers
// must have already written bp's header/footer with ALLOC=0.
func (fl *freeListIndex) insert(h *Heap, bp int32) {
	cls := fl.classOf(sizeOf(h.data, bp))
	head := fl.heads[cls]
	setNextFree(h.data, h.base, bp, head)
	setPrevFree(h.data, h.base, bp, 0)
	if head != 0 {
		setPrevFree(h.data, h.base, head, bp)
	}
	fl.heads[cls] = bp
}

// remove unlinks bp from the list for class cls. The caller supplies cls
// rather than recomputing it because several call sites already know which
// class bp occupied (e.g. before a coalesce resizes the block).
func (fl *freeListIndex) remove(h *Heap, bp int32, cls int) {
	prev := getPrevFree(h.data, h.base, bp)
	next := getNextFree(h.data, h.base, bp)
	if prev != 0 {
		setNextFree(h.data, h.base, prev, next)
	} else {
		fl.heads[cls] = next
	}
	if next != 0 {
		setPrevFree(h.data, h.base, next, prev)
	}
}
