// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import "unsafe"

// packedWordSize is the size, in bytes, of a packed type-description word -
// the same word used to align object records to, per spec.
var packedWordSize = int(unsafe.Sizeof(uintptr(0)))

// MemoryChunk owns a fixed-capacity byte buffer and a fill cursor: the
// offset of the first unused byte. It performs aligned bump allocation on
// behalf of StackAllocator and knows how to walk and destroy the droppable
// records it holds; it does not itself decide whether an allocation fits -
// that check lives in StackAllocator.
type MemoryChunk struct {
	buffer []byte
	fill   int
}

// newMemoryChunk allocates capacity bytes of storage. Like the source
// crate's RawVec-backed chunk, failure to obtain the storage from the host
// is fatal - make([]byte, capacity) panics on its own OOM, which is exactly
// that behavior.
func newMemoryChunk(capacity int) *MemoryChunk {
	return &MemoryChunk{buffer: make([]byte, capacity)}
}

// Capacity returns the maximal number of bytes the chunk can store.
func (c *MemoryChunk) Capacity() int { return len(c.buffer) }

// Fill returns the index of the first unused byte in the chunk.
func (c *MemoryChunk) Fill() int { return c.fill }

// SetFill sets the index of the first unused byte. It panics if newFill is
// outside [0, Capacity()].
func (c *MemoryChunk) SetFill(newFill int) {
	if newFill < 0 || newFill > len(c.buffer) {
		panic("arena: MemoryChunk.SetFill: fill out of bounds")
	}
	c.fill = newFill
}

// BasePtr returns a pointer to the start of the chunk's storage, or nil for
// a zero-capacity chunk.
func (c *MemoryChunk) BasePtr() unsafe.Pointer {
	if len(c.buffer) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(c.buffer))
}

func (c *MemoryChunk) byteAt(off int) unsafe.Pointer {
	return unsafe.Add(c.BasePtr(), off)
}

// DestroyTo walks the object-record sequence beginning at offset start,
// until it reaches the current fill, running the destructor of every
// record whose initialized flag is set. Records are visited in the order
// they appear in memory - lowest offset first, i.e. insertion order, the
// opposite of stack-unwind order. The caller is responsible for updating
// fill to start afterwards; DestroyTo itself never touches fill.
//
// If start == fill this is a no-op. Calling it with an offset that is not
// the start of a record a StackAllocator actually produced is undefined
// behavior at the contract level.
func (c *MemoryChunk) DestroyTo(start int) {
	idx := start
	for idx < c.fill {
		wordPtr := (*uintptr)(c.byteAt(idx))
		td, initialized := unpackTypeDescription(*wordPtr)
		objStart := roundUp(idx+packedWordSize, int(td.Align))
		if initialized && td.DropFn != nil {
			td.DropFn(c.byteAt(objStart))
		}
		idx = roundUp(objStart+int(td.Size), packedWordSize)
	}
}

// Destroy runs the full destructor walk over the whole chunk, equivalent to
// DestroyTo(0).
func (c *MemoryChunk) Destroy() {
	c.DestroyTo(0)
}
