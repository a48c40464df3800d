package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackUnpack(t *testing.T) {
	data := make([]byte, 64)
	bp := int32(32)
	setHeader(data, bp, 24, true, false)

	require.EqualValues(t, 24, sizeOf(data, bp))
	require.True(t, allocOf(data, bp))
	require.False(t, prevAllocOf(data, bp))
}

func TestSetFooterMirrorsHeader(t *testing.T) {
	data := make([]byte, 64)
	bp := int32(16)
	setHeader(data, bp, 24, false, true)
	setFooter(data, bp)

	h := header(bp)
	f := footer(bp, 24)
	require.Equal(t, data[h:h+4], data[f:f+4])
}

func TestNextPrevBlockRoundTrip(t *testing.T) {
	data := make([]byte, 128)
	bp := int32(16)
	setHeader(data, bp, 24, false, true)
	setFooter(data, bp)

	next := nextBlock(data, bp)
	setHeader(data, next, 16, true, false)

	require.Equal(t, bp, prevBlock(data, next))
}

func TestClearSetPrevAlloc(t *testing.T) {
	data := make([]byte, 64)
	bp := int32(16)
	setHeader(data, bp, 16, true, false)
	require.False(t, prevAllocOf(data, bp))

	setPrevAlloc(data, bp)
	require.True(t, prevAllocOf(data, bp))

	clearPrevAlloc(data, bp)
	require.False(t, prevAllocOf(data, bp))
}

func TestSizeClassOfOrdering(t *testing.T) {
	table := newSizeClassTable(nil)
	require.Equal(t, table.classOf(32), table.classOf(1))
	require.Less(t, table.classOf(32), table.classOf(33))
	require.Equal(t, len(table.thresholds), table.classOf(1<<30))
}
