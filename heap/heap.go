package heap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/relyt871/heapkit/internal/wire"
)

// Config tunes the allocator's placement and growth policy. New replaces a
// zero MaxFit or ChunkSize with DefaultConfig's value, so the zero value
// behaves like DefaultConfig.
type Config struct {
	// MaxFit bounds how many fitting candidates the placement engine
	// examines in a single size class before settling for the best one
	// seen so far, trading fit quality for a constant-ish allocation cost.
	MaxFit int

	// ChunkSize is the minimum number of bytes the heap extender asks the
	// address provider for, even when the triggering request is smaller.
	// Amortizes the cost of growth over many small allocations.
	ChunkSize int32

	// Thresholds configures the segregated free-list size classes. Nil
	// uses the built-in ladder.
	Thresholds []int32

	// Logger receives diagnostic events (heap growth and failed growth).
	// Nil discards them, unless the HEAPKIT_LOG_ALLOC environment variable
	// is set, in which case they go to stderr at debug level.
	Logger *slog.Logger
}

// DefaultConfig matches the classic malloc-lab tuning: a small bounded
// best-fit scan and a 4KiB growth chunk.
var DefaultConfig = Config{
	MaxFit:    6,
	ChunkSize: 4096,
}

// Heap is a single allocator instance over one AddressProvider. It is not
// safe for concurrent use; callers needing concurrency serialize their own
// access (see doc.go).
type Heap struct {
	ap   AddressProvider
	data []byte

	// base anchors the free-list link encoding: it is the prologue's
	// payload pointer. The prologue is never free, so no free block sits at
	// base and a stored link of 0 can only mean "no link".
	base int32

	cfg      Config
	freeList *freeListIndex
	stats    Stats
	logger   *slog.Logger
}

// New builds a fresh heap backed by ap, bootstrapping the prologue and
// epilogue sentinels. ap must be empty (Bounds() == (0, 0)).
func New(ap AddressProvider, cfg Config) (*Heap, error) {
	if cfg.MaxFit <= 0 {
		cfg.MaxFit = DefaultConfig.MaxFit
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig.ChunkSize
	}
	logger := cfg.Logger
	if logger == nil {
		if os.Getenv("HEAPKIT_LOG_ALLOC") != "" {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.DiscardHandler)
		}
	}

	h := &Heap{
		ap:       ap,
		cfg:      cfg,
		freeList: newFreeListIndex(newSizeClassTable(cfg.Thresholds)),
		logger:   logger,
	}

	reserved, err := ap.Extend(initWords * wordSize)
	if err != nil {
		return nil, fmt.Errorf("heap: bootstrap: %w", err)
	}
	h.data = ap.Bytes()

	// word 0: alignment padding so the prologue's payload pointer (and so
	// every later block's) lands on a D boundary. words 1-4: prologue, an
	// always-allocated M-byte sentinel that (unusually for an allocated
	// block) keeps a footer so PRED_BLK of the first real block never walks
	// off the front of the heap.
	prologueBP := reserved + 2*wordSize
	setHeader(h.data, prologueBP, minBlock, true, false)
	setFooter(h.data, prologueBP)

	h.base = prologueBP

	// word 5: epilogue, a zero-size allocated sentinel whose PREV_ALLOC
	// reflects the prologue.
	setHeader(h.data, nextBlock(h.data, prologueBP), 0, true, true)

	return h, nil
}

// Allocate reserves at least n bytes and returns a slice over them. The
// slice's contents are unspecified (not zeroed) until written. Requests of
// n <= 0 return (nil, nil).
func (h *Heap) Allocate(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	s := adjustedSize(int32(n))
	h.stats.AllocCalls++

	if bp := h.findFit(s); bp != 0 {
		h.stats.AllocFastPath++
		h.build(bp, s)
		h.stats.BytesAllocated += int64(sizeOf(h.data, bp))
		return h.payload(bp), nil
	}

	extendBytes := s
	if h.cfg.ChunkSize > extendBytes {
		extendBytes = h.cfg.ChunkSize
	}
	grown, err := h.extendHeap(extendBytes / wordSize)
	if err != nil {
		h.logger.Debug("heap: extend failed", "requested", n, "extendBytes", extendBytes, "err", err)
		return nil, ErrNoSpace
	}
	h.stats.AllocSlowPath++
	h.build(grown, s)
	h.stats.BytesAllocated += int64(sizeOf(h.data, grown))
	return h.payload(grown), nil
}

// Deallocate returns p, previously returned by Allocate/Reallocate/
// ZeroAllocate on this heap, to the free list. A nil p is a no-op. Returns
// ErrInvalidPointer for a slice that does not start inside this heap's
// store, or ErrBadRequest for one that starts inside it at an offset that is
// not D-aligned. A D-aligned offset inside the store is taken to be a block
// without further checking.
func (h *Heap) Deallocate(p []byte) error {
	if p == nil {
		return nil
	}
	bp, err := h.offsetOf(p)
	if err != nil {
		return err
	}
	data := h.data
	size := sizeOf(data, bp)
	setHeader(data, bp, size, false, prevAllocOf(data, bp))
	setFooter(data, bp)
	h.stats.FreeCalls++
	h.stats.BytesFreed += int64(size)
	h.coalesce(bp)
	return nil
}

// Reallocate resizes the allocation at p to n bytes, preserving the
// min(old, new) leading bytes of content. A nil p behaves like Allocate; an
// n of 0 behaves like Deallocate and returns (nil, nil).
func (h *Heap) Reallocate(p []byte, n int) ([]byte, error) {
	if n == 0 {
		return nil, h.Deallocate(p)
	}
	if p == nil {
		return h.Allocate(n)
	}
	bp, err := h.offsetOf(p)
	if err != nil {
		return nil, err
	}
	oldPayload := sizeOf(h.data, bp) - wordSize

	q, err := h.Allocate(n)
	if err != nil {
		return nil, err
	}
	newBP, _ := h.offsetOf(q)
	newPayload := sizeOf(h.data, newBP) - wordSize

	cpy := oldPayload
	if newPayload < cpy {
		cpy = newPayload
	}
	copy(h.data[newBP:newBP+cpy], h.data[bp:bp+cpy])

	if err := h.Deallocate(p); err != nil {
		return nil, err
	}
	return q, nil
}

// ZeroAllocate reserves space for m elements of n bytes each, zeroed.
func (h *Heap) ZeroAllocate(m, n int) ([]byte, error) {
	if m <= 0 || n <= 0 {
		return nil, nil
	}
	p, err := h.Allocate(m * n)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	clear(p)
	return p, nil
}

func (h *Heap) payload(bp int32) []byte {
	size := sizeOf(h.data, bp)
	end := bp + size - wordSize
	return h.data[bp:end:end]
}

// adjustedSize converts a requested payload size into the block size that
// must be carved out: room for one header word, rounded up to a D-aligned
// multiple no smaller than the minimum block.
func adjustedSize(n int32) int32 {
	s := wire.AlignDI32(n + wordSize)
	if s < minBlock {
		s = minBlock
	}
	return s
}
