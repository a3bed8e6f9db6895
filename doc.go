// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package arena implements a family of single-threaded, region-based stack
allocators. Each allocator owns a fixed-capacity byte buffer, pre-sized at
construction, and hands out aligned sub-ranges from it in bump-pointer
fashion. Memory is reclaimed only in bulk, at a Reset or a rollback to a
previously obtained marker - there is no general per-object Free.

Two lifetime categories of objects are supported side by side in the same
allocator:

  - droppable objects, whose destructor (in Go terms, a Drop method) must
    run before their bytes are reused;
  - trivially-copyable objects, which carry no per-object bookkeeping and
    whose bytes can simply be reused.

A type is droppable iff *T implements Dropper. Everything else is treated
as trivially copyable and routed to a metadata-free chunk.

Core types

StackAllocator is the base building block: a pair of MemoryChunks, one for
droppable allocations and one for copy allocations. Alloc/AllocUnchecked
place a value of some type T inside the allocator and return a *T valid
until the next Reset (or ResetToMarker crossing it). DoubleBufferedAllocator
pairs two StackAllocators and swaps which one is "active" every cycle, so
last frame's data stays readable while the next frame is built.
DoubleEndedStackAllocator pairs a "resident" and a "temp" StackAllocator for
two-phase loading, where temporary build-time data can be discarded while
the resident data it produced stays live.

Intended use

	frameAlloc := arena.NewStackAllocator(1<<16, 1<<16)

	for {
		frameAlloc.Reset()
		frameAlloc.ResetCopy()

		m, err := arena.Alloc(frameAlloc, func() Monster {
			return Monster{HP: 10}
		})
		// use *m only until the next Reset.
	}

Concurrency

None of the types in this package are safe for concurrent use. Each
allocator is meant to be owned and driven by a single goroutine; sharing
one across goroutines without external synchronization is a programming
error, not a supported mode.

*/
package arena
