package heap

// extendHeap grows the region by the given number of 32-bit words (rounded
// up to an even count so the new block stays D-aligned), installs a new
// free block and
// epilogue, and coalesces the new block with whatever free space preceded
// it. Returns the payload pointer of the resulting free block.
func (h *Heap) extendHeap(words int32) (int32, error) {
	if words%2 != 0 {
		words++
	}
	nbytes := words * wordSize

	base, err := h.ap.Extend(int(nbytes))
	if err != nil {
		return 0, err
	}
	h.data = h.ap.Bytes()

	bp := base
	prevAlloc := prevAllocOf(h.data, bp) // reads the word Extend's new bytes overwrite: the old epilogue
	setHeader(h.data, bp, nbytes, false, prevAlloc)
	setFooter(h.data, bp)

	epilogue := nextBlock(h.data, bp)
	setHeader(h.data, epilogue, 0, true, false)

	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(nbytes)
	h.logger.Debug("heap: extended", "bytes", nbytes, "at", bp)

	return h.coalesce(bp), nil
}
