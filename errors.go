// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import "fmt"

// ErrOutOfMemory is returned by a checked allocation when the chunk it
// targets does not have room for the requested object.
type ErrOutOfMemory struct {
	Op        string // the operation that failed, e.g. "Alloc"
	Requested int    // the fill offset the allocation would have needed
	Capacity  int    // the capacity of the chunk that rejected it
}

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("arena: %s: out of memory: need offset %d, capacity is %d", e.Op, e.Requested, e.Capacity)
}

// ErrOutOfPool is reserved for a pool-allocator extension with an intrusive
// free list (see SPEC_FULL.md, section 2.1). Nothing in this package
// constructs one; it exists so that extension can reuse AllocationError's
// shape without an API break.
type ErrOutOfPool struct {
	Op string
}

func (e *ErrOutOfPool) Error() string {
	return fmt.Sprintf("arena: %s: out of pool", e.Op)
}

// AllocationError is the sum of the error variants a checked allocation can
// return.
type AllocationError interface {
	error
}
