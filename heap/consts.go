package heap

// Word sizes from the block layout (see doc.go for the full picture).
const (
	wordSize  = 4  // W: one header/footer word, one free-list link slot
	dsize     = 8  // D: payload alignment unit
	minBlock  = 16 // M = 2*D: header + two link slots + footer
	alignment = 8  // A: alignment of returned payload addresses

	initWords = 6 // prologue + epilogue bootstrap reserve, in words
)

// Header/footer word bit layout: bits [31:3] hold size (always a multiple
// of 8), bit 0 is ALLOC, bit 1 is PREV_ALLOC. Bit 2 is reserved zero.
const (
	allocBit     uint32 = 1 << 0
	prevAllocBit uint32 = 1 << 1
	sizeMask     uint32 = ^uint32(0x7)
)

func pack(size int32, alloc, prevAlloc bool) uint32 {
	w := uint32(size) & sizeMask
	if alloc {
		w |= allocBit
	}
	if prevAlloc {
		w |= prevAllocBit
	}
	return w
}
