// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import (
	"testing"
	"unsafe"
)

type monster struct {
	hp   int
	seen *[]int
}

func (m *monster) Drop() {
	*m.seen = append(*m.seen, m.hp)
}

// Scenario A - drop order is insertion order.
func TestStackAllocatorDropOrderIsInsertionOrder(t *testing.T) {
	s := NewStackAllocator(200, 200)
	var seen []int

	if _, err := Alloc(s, func() monster { return monster{hp: 1, seen: &seen} }); err != nil {
		t.Fatal(err)
	}
	if _, err := Alloc(s, func() monster { return monster{hp: 2, seen: &seen} }); err != nil {
		t.Fatal(err)
	}

	s.Reset()

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("drop order = %v, want [1 2]", seen)
	}
	if s.Marker() != 0 {
		t.Fatalf("Marker() = %d, want 0 after Reset", s.Marker())
	}
}

// Scenario B - partial rollback.
func TestStackAllocatorPartialRollback(t *testing.T) {
	s := NewStackAllocator(200, 200)
	var seen []int

	m := s.Marker()
	if _, err := Alloc(s, func() monster { return monster{hp: 1, seen: &seen} }); err != nil {
		t.Fatal(err)
	}
	m2 := s.Marker()
	if _, err := Alloc(s, func() monster { return monster{hp: 2, seen: &seen} }); err != nil {
		t.Fatal(err)
	}

	s.ResetToMarker(m2)
	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("after first rollback, seen = %v, want [2]", seen)
	}
	if s.Marker() != m2 {
		t.Fatalf("Marker() = %d, want %d", s.Marker(), m2)
	}

	s.ResetToMarker(m)
	if len(seen) != 2 || seen[1] != 1 {
		t.Fatalf("after second rollback, seen = %v, want [2 1]", seen)
	}
	if s.Marker() != m {
		t.Fatalf("Marker() = %d, want %d", s.Marker(), m)
	}
}

// Scenario C - mixed drop/copy routing.
func TestStackAllocatorMixedDropCopyRouting(t *testing.T) {
	s := NewStackAllocator(64, 64)
	var seen []int

	if _, err := Alloc(s, func() uint8 { return 7 }); err != nil {
		t.Fatal(err)
	}
	if _, err := Alloc(s, func() monster { return monster{hp: 9, seen: &seen} }); err != nil {
		t.Fatal(err)
	}
	if _, err := Alloc(s, func() uint32 { return 42 }); err != nil {
		t.Fatal(err)
	}

	if s.MarkerCopy() < 5 {
		t.Fatalf("MarkerCopy() = %d, want >= 5", s.MarkerCopy())
	}
	if s.Marker() <= 0 {
		t.Fatalf("Marker() = %d, want > 0", s.Marker())
	}

	dropMarkerBefore := s.Marker()
	s.ResetCopy()
	if s.Marker() != dropMarkerBefore {
		t.Fatalf("ResetCopy changed Marker(): %d != %d", s.Marker(), dropMarkerBefore)
	}
}

// Scenario D - alignment arithmetic on the copy chunk.
func TestStackAllocatorCopyAlignmentArithmetic(t *testing.T) {
	s := NewStackAllocator(200, 200)

	if _, err := Alloc(s, func() uint8 { return 1 }); err != nil {
		t.Fatal(err)
	}
	if s.MarkerCopy() != 1 {
		t.Fatalf("MarkerCopy() after u8 = %d, want 1", s.MarkerCopy())
	}

	if _, err := Alloc(s, func() uint32 { return 1 }); err != nil {
		t.Fatal(err)
	}
	if s.MarkerCopy() != 8 {
		t.Fatalf("MarkerCopy() after u32 = %d, want 8", s.MarkerCopy())
	}

	if _, err := Alloc(s, func() uint64 { return 1 }); err != nil {
		t.Fatal(err)
	}
	if s.MarkerCopy()%8 != 0 {
		t.Fatalf("MarkerCopy() after u64 = %d, want a multiple of 8", s.MarkerCopy())
	}
}

func TestStackAllocatorAlignmentInvariant(t *testing.T) {
	s := NewStackAllocator(256, 256)
	type aligned struct {
		_ byte
		v int64
	}
	p, err := Alloc(s, func() aligned { return aligned{v: 99} })
	if err != nil {
		t.Fatal(err)
	}
	if addr := uintptr(unsafe.Pointer(p)); addr%unsafe.Alignof(aligned{}) != 0 {
		t.Fatalf("returned address %#x is not aligned to %d", addr, unsafe.Alignof(aligned{}))
	}
	if p.v != 99 {
		t.Fatalf("p.v = %d, want 99", p.v)
	}
}

func TestStackAllocatorOutOfMemory(t *testing.T) {
	s := NewStackAllocator(4, 4)
	var seen []int
	_, err := Alloc(s, func() monster { return monster{hp: 1, seen: &seen} })
	if err == nil {
		t.Fatal("expected ErrOutOfMemory, got nil")
	}
	var oom *ErrOutOfMemory
	if !asErrOutOfMemory(err, &oom) {
		t.Fatalf("expected *ErrOutOfMemory, got %T: %v", err, err)
	}
}

func asErrOutOfMemory(err error, target **ErrOutOfMemory) bool {
	if e, ok := err.(*ErrOutOfMemory); ok {
		*target = e
		return true
	}
	return false
}

func TestStackAllocatorResetIdempotent(t *testing.T) {
	s := NewStackAllocator(128, 128)
	var seen []int
	if _, err := Alloc(s, func() monster { return monster{hp: 3, seen: &seen} }); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	s.Reset()
	if s.Marker() != 0 {
		t.Fatalf("Marker() = %d, want 0", s.Marker())
	}
	if len(seen) != 1 {
		t.Fatalf("drop ran %d times, want 1", len(seen))
	}
}

func TestStackAllocatorResetToMarkerOfMarkerIsNoOp(t *testing.T) {
	s := NewStackAllocator(128, 128)
	var seen []int
	if _, err := Alloc(s, func() monster { return monster{hp: 3, seen: &seen} }); err != nil {
		t.Fatal(err)
	}
	m := s.Marker()
	s.ResetToMarker(m)
	if s.Marker() != m {
		t.Fatalf("Marker() = %d, want %d", s.Marker(), m)
	}
	if len(seen) != 0 {
		t.Fatalf("drop ran %d times, want 0", len(seen))
	}
}

func TestAllocUncheckedSkipsCapacityCheck(t *testing.T) {
	// An int64 in an 8-byte copy chunk ends exactly at capacity, which the
	// checked Alloc rejects (end >= capacity); AllocUnchecked places it.
	s := NewStackAllocator(256, 8)
	p := AllocUnchecked(s, func() int64 { return 5 })
	if *p != 5 {
		t.Fatalf("*p = %d, want 5", *p)
	}
}

func TestStackAllocatorZeroSizeType(t *testing.T) {
	s := NewStackAllocator(128, 128)
	type empty struct{}
	before := s.MarkerCopy()
	p, err := Alloc(s, func() empty { return empty{} })
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("Alloc of a zero-size type returned nil")
	}
	if addr := uintptr(unsafe.Pointer(p)); addr%unsafe.Alignof(empty{}) != 0 {
		t.Fatalf("zero-size allocation misaligned: %#x", addr)
	}
	if s.MarkerCopy() < before {
		t.Fatalf("MarkerCopy() went backwards: %d < %d", s.MarkerCopy(), before)
	}
}

func TestStackAllocatorStorageAsPtrReadsBackRawBytes(t *testing.T) {
	s := NewStackAllocator(64, 64)

	p, err := Alloc(s, func() uint32 { return 0xdeadbeef })
	if err != nil {
		t.Fatal(err)
	}

	base := s.StorageCopyAsPtr()
	if base == nil {
		t.Fatal("StorageCopyAsPtr() = nil for a non-empty copy chunk")
	}
	raw := unsafe.Slice((*byte)(base), s.MarkerCopy())
	readBack := *(*uint32)(unsafe.Pointer(&raw[0]))
	if readBack != *p {
		t.Fatalf("raw bytes at StorageCopyAsPtr() decode to %#x, want %#x", readBack, *p)
	}
}

func TestStackAllocatorStorageAsPtrNilForEmptyChunk(t *testing.T) {
	s := NewStackAllocator(0, 0)
	if p := s.StorageAsPtr(); p != nil {
		t.Fatalf("StorageAsPtr() of a zero-capacity drop chunk = %v, want nil", p)
	}
	if p := s.StorageCopyAsPtr(); p != nil {
		t.Fatalf("StorageCopyAsPtr() of a zero-capacity copy chunk = %v, want nil", p)
	}
}

func TestStackAllocatorCloseRunsDestructorsOnce(t *testing.T) {
	s := NewStackAllocator(128, 128)
	var seen []int
	if _, err := Alloc(s, func() monster { return monster{hp: 11, seen: &seen} }); err != nil {
		t.Fatal(err)
	}
	s.Close()
	s.Close()
	if len(seen) != 1 {
		t.Fatalf("drop ran %d times, want 1", len(seen))
	}
}
