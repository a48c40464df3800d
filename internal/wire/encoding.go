package wire

import "encoding/binary"

// Word encoding utilities for the heap's native byte order.
//
// Implementation: uses encoding/binary with the host's native order. The
// heap is not portable across machines (spec §6), so there is no reason to
// fix an endianness independent of the host; binary.NativeEndian keeps the
// encode/decode pair a single inlinable call on every platform Go targets.

// PutU32 writes a uint32 to b at off in native byte order.
func PutU32(b []byte, off int, v uint32) {
	binary.NativeEndian.PutUint32(b[off:off+4], v)
}

// PutI32 writes an int32 to b at off in native byte order.
func PutI32(b []byte, off int, v int32) {
	binary.NativeEndian.PutUint32(b[off:off+4], uint32(v))
}

// ReadU32 reads a uint32 from b at off in native byte order.
func ReadU32(b []byte, off int) uint32 {
	return binary.NativeEndian.Uint32(b[off : off+4])
}

// ReadI32 reads an int32 from b at off in native byte order.
func ReadI32(b []byte, off int) int32 {
	return int32(binary.NativeEndian.Uint32(b[off : off+4]))
}
