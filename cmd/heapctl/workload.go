package main

import (
	"math/rand"

	"github.com/relyt871/heapkit/heap"
)

// runWorkload drives a synthetic mixed alloc/free trace against h and
// returns the allocations that were still live at the end.
func runWorkload(h *heap.Heap, ops int, maxSize int, seed int64) (live [][]byte) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < ops; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			n := rng.Intn(maxSize) + 1
			p, err := h.Allocate(n)
			if err != nil {
				continue
			}
			live = append(live, p)
		default:
			idx := rng.Intn(len(live))
			victim := live[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			_ = h.Deallocate(victim)
		}
	}
	return live
}
