//go:build linux || darwin

package heap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapProvider is an AddressProvider backed by a single anonymous mmap
// reservation. The whole capacity is mapped PROT_READ|PROT_WRITE up front;
// the kernel only backs pages with physical memory as they're touched, so
// reserving a large capacity costs address space, not RAM. Extend never
// remaps, so addresses handed out to callers stay valid for the provider's
// lifetime — the same non-relocation guarantee a copy-on-grow slice would
// otherwise break.
type MmapProvider struct {
	mem []byte
	hi  int32
}

// NewMmapProvider reserves maxBytes of anonymous memory.
func NewMmapProvider(maxBytes int) (*MmapProvider, error) {
	mem, err := unix.Mmap(-1, 0, maxBytes, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("heap: mmap reservation failed: %w", err)
	}
	return &MmapProvider{mem: mem}, nil
}

func (p *MmapProvider) Extend(n int) (int32, error) {
	base := p.hi
	newHi := base + int32(n)
	if int(newHi) > len(p.mem) {
		return 0, ErrAddressSpaceExhausted
	}
	p.hi = newHi
	return base, nil
}

func (p *MmapProvider) Bounds() (int32, int32) {
	return 0, p.hi
}

func (p *MmapProvider) Bytes() []byte {
	return p.mem[:p.hi]
}

// Close releases the mapping. The provider, and any Heap built on it, must
// not be used afterward.
func (p *MmapProvider) Close() error {
	return unix.Munmap(p.mem)
}
