package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHeap(t *testing.T, maxBytes int) *Heap {
	t.Helper()
	ap := NewSliceProvider(maxBytes)
	h, err := New(ap, DefaultConfig)
	require.NoError(t, err)
	return h
}

func TestNewBootstrapsCleanHeap(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	require.Empty(t, h.Validate())
}

func TestAllocateReturnsUsableCapacity(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	p, err := h.Allocate(100)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(p), 100)
	for i := range p {
		p[i] = byte(i)
	}
	require.Empty(t, h.Validate())
}

func TestAllocateZeroReturnsNil(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	p, err := h.Allocate(0)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestFreeThenReallocCoalesces(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	a, err := h.Allocate(64)
	require.NoError(t, err)
	b, err := h.Allocate(64)
	require.NoError(t, err)

	require.NoError(t, h.Deallocate(a))
	require.NoError(t, h.Deallocate(b))
	require.Empty(t, h.Validate())

	stats := h.Stats()
	require.Positive(t, stats.CoalesceBackward+stats.CoalesceForward+stats.CoalesceBoth)
}

func TestSplitLeavesUsableRemainder(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	big, err := h.Allocate(4000)
	require.NoError(t, err)
	require.NoError(t, h.Deallocate(big))

	small, err := h.Allocate(32)
	require.NoError(t, err)
	require.NotNil(t, small)
	require.Positive(t, h.Stats().SplitCount)
	require.Empty(t, h.Validate())
}

func TestReallocatePreservesContent(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	p, err := h.Allocate(16)
	require.NoError(t, err)
	copy(p, []byte("0123456789abcdef"))

	q, err := h.Reallocate(p, 256)
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789abcdef"), q[:16])
	require.Empty(t, h.Validate())
}

func TestReallocateToZeroFrees(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	p, err := h.Allocate(32)
	require.NoError(t, err)

	q, err := h.Reallocate(p, 0)
	require.NoError(t, err)
	require.Nil(t, q)
	require.Empty(t, h.Validate())
}

func TestReallocateNilActsLikeAllocate(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	q, err := h.Reallocate(nil, 48)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(q), 48)
}

func TestZeroAllocateZeroesMemory(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	p, err := h.Allocate(64)
	require.NoError(t, err)
	for i := range p {
		p[i] = 0xFF
	}
	require.NoError(t, h.Deallocate(p))

	q, err := h.ZeroAllocate(8, 8)
	require.NoError(t, err)
	for _, b := range q {
		require.Zero(t, b)
	}
}

func TestDeallocateRejectsForeignSlice(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	foreign := make([]byte, 16)
	err := h.Deallocate(foreign)
	require.ErrorIs(t, err, ErrInvalidPointer)
}

func TestAllocateGrowsHeapOnMiss(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	before := h.Stats().GrowCalls
	_, err := h.Allocate(8000)
	require.NoError(t, err)
	require.Greater(t, h.Stats().GrowCalls, before)
}

func TestAllocateReturnsErrNoSpaceWhenExhausted(t *testing.T) {
	h := newTestHeap(t, 256)
	var err error
	for i := 0; i < 64; i++ {
		if _, err = h.Allocate(64); err != nil {
			break
		}
	}
	require.ErrorIs(t, err, ErrNoSpace)
}

// A 100-byte request rounds up into the class bounded by the 128 threshold,
// not the 64 one below it; a 5000-byte request lands in the 8192 class.
func TestSegregatedClassRoutingMatchesThresholds(t *testing.T) {
	h := newTestHeap(t, 1<<20)

	p1, err := h.Allocate(100)
	require.NoError(t, err)
	bp1, err := h.offsetOf(p1)
	require.NoError(t, err)
	require.Equal(t, h.freeList.classOf(128), h.freeList.classOf(sizeOf(h.data, bp1)))

	p2, err := h.Allocate(5000)
	require.NoError(t, err)
	bp2, err := h.offsetOf(p2)
	require.NoError(t, err)
	require.Equal(t, h.freeList.classOf(8192), h.freeList.classOf(sizeOf(h.data, bp2)))
}

// Reproduces the bounded best-fit walk against a hand-built catalog of free
// blocks {48,64,32,40,56,72,96,40} placed in that order, separated by
// allocated spacers so they never coalesce into each other. A request for
// 40 is satisfied by one of the two size-40 blocks (either is an acceptable
// answer since they tie); a request for 50 is satisfied by the 56-byte
// block, the tightest fit among {64,56,72,96}.
func TestBestFitAmongHandBuiltFreeBlocks(t *testing.T) {
	h := newTestHeap(t, 1<<20)
	sizes := []int32{48, 64, 32, 40, 56, 72, 96, 40}

	var total int32
	for i, s := range sizes {
		total += s
		if i < len(sizes)-1 {
			total += minBlock
		}
	}

	grown, err := h.extendHeap((total + wordSize - 1) / wordSize)
	require.NoError(t, err)
	grownSize := sizeOf(h.data, grown)
	prevAlloc := prevAllocOf(h.data, grown)
	h.freeList.remove(h, grown, h.freeList.classOf(grownSize))
	slack := grownSize - total

	bp := grown
	for i, s := range sizes {
		sz := s
		if i == len(sizes)-1 {
			sz += slack
		}
		setHeader(h.data, bp, sz, false, prevAlloc)
		setFooter(h.data, bp)
		h.freeList.insert(h, bp)

		if i < len(sizes)-1 {
			spacer := nextBlock(h.data, bp)
			setHeader(h.data, spacer, minBlock, true, false)
			bp = nextBlock(h.data, spacer)
			prevAlloc = true
		}
	}

	fit40 := h.findFit(40)
	require.NotZero(t, fit40)
	require.EqualValues(t, 40, sizeOf(h.data, fit40))

	fit50 := h.findFit(50)
	require.NotZero(t, fit50)
	require.EqualValues(t, 56, sizeOf(h.data, fit50))
}

func TestManyAllocFreeCyclesStayValid(t *testing.T) {
	h := newTestHeap(t, 4<<20)
	var live [][]byte
	sizes := []int{8, 16, 33, 64, 127, 512, 4096, 1}

	for round := 0; round < 200; round++ {
		sz := sizes[round%len(sizes)]
		p, err := h.Allocate(sz)
		require.NoError(t, err)
		live = append(live, p)

		if len(live) > 5 {
			victim := live[0]
			live = live[1:]
			require.NoError(t, h.Deallocate(victim))
		}
	}
	for _, p := range live {
		require.NoError(t, h.Deallocate(p))
	}
	require.Empty(t, h.Validate())
}
