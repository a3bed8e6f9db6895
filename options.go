// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

// Options amends the plain NewStackAllocator(capDrop, capCopy) constructor
// with named fields, the same compatibility promise dbm.Options documents:
// new fields may be added here over time, which is backward compatible as
// long as callers assign by field name. NewStackAllocator remains the
// primary entry point; Options is additive sugar for callers who would
// rather not track which positional argument is which.
type Options struct {
	// DropCapacity is the byte capacity of the chunk backing droppable
	// allocations.
	DropCapacity int

	// CopyCapacity is the byte capacity of the chunk backing
	// trivially-copyable allocations.
	CopyCapacity int
}

// NewStackAllocatorWithOptions is equivalent to
// NewStackAllocator(o.DropCapacity, o.CopyCapacity).
func NewStackAllocatorWithOptions(o Options) *StackAllocator {
	return NewStackAllocator(o.DropCapacity, o.CopyCapacity)
}
