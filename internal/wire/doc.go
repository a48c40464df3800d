// Package wire houses the low-level byte-order and alignment helpers shared
// by the allocator core. The goal is to keep word encoding focused,
// allocation-free, and independent of the public heap API so the higher
// level packages can orchestrate bytes in a more ergonomic form.
package wire
