// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

// DoubleBufferedAllocator pairs two StackAllocators with a boolean selector
// and delegates every StackAllocator operation to whichever one is
// currently active. SwapBuffers flips the selector without dropping
// anything; the idiom is to swap, then reset the now-active buffer, at the
// start of every cycle (e.g. a frame):
//
//	d.SwapBuffers()
//	d.Reset()
//	d.ResetCopy()
//	// allocate into the now-active buffer; data from the previous cycle
//	// is still readable via references taken from the now-inactive one.
//
// Reference validity is relative to the owning buffer, not to "active": a
// reference obtained before a swap stays valid as long as no reset crosses
// its marker on that specific buffer.
type DoubleBufferedAllocator struct {
	buffers [2]*StackAllocator
	active  int
}

// NewDoubleBufferedAllocator creates two StackAllocators, each with the
// given drop/copy capacities, and makes buffer 0 active.
func NewDoubleBufferedAllocator(capDrop, capCopy int) *DoubleBufferedAllocator {
	return &DoubleBufferedAllocator{
		buffers: [2]*StackAllocator{
			NewStackAllocator(capDrop, capCopy),
			NewStackAllocator(capDrop, capCopy),
		},
	}
}

// Active returns the currently active StackAllocator.
func (d *DoubleBufferedAllocator) Active() *StackAllocator { return d.buffers[d.active] }

// Inactive returns the currently inactive StackAllocator.
func (d *DoubleBufferedAllocator) Inactive() *StackAllocator { return d.buffers[1-d.active] }

// SwapBuffers flips the active selector. Calling it twice in a row with no
// intervening allocation is an involution: the selector and both buffers'
// contents are exactly as they were before the first call.
func (d *DoubleBufferedAllocator) SwapBuffers() { d.active = 1 - d.active }

// Marker returns Active().Marker().
func (d *DoubleBufferedAllocator) Marker() int { return d.Active().Marker() }

// MarkerCopy returns Active().MarkerCopy().
func (d *DoubleBufferedAllocator) MarkerCopy() int { return d.Active().MarkerCopy() }

// Capacity returns Active().Capacity().
func (d *DoubleBufferedAllocator) Capacity() int { return d.Active().Capacity() }

// CapacityCopy returns Active().CapacityCopy().
func (d *DoubleBufferedAllocator) CapacityCopy() int { return d.Active().CapacityCopy() }

// Reset resets the active buffer's drop chunk.
func (d *DoubleBufferedAllocator) Reset() { d.Active().Reset() }

// ResetCopy resets the active buffer's copy chunk.
func (d *DoubleBufferedAllocator) ResetCopy() { d.Active().ResetCopy() }

// ResetToMarker rolls the active buffer's drop chunk back to m.
func (d *DoubleBufferedAllocator) ResetToMarker(m int) { d.Active().ResetToMarker(m) }

// ResetToMarkerCopy rolls the active buffer's copy chunk back to m.
func (d *DoubleBufferedAllocator) ResetToMarkerCopy(m int) { d.Active().ResetToMarkerCopy(m) }

// Close closes both buffers.
func (d *DoubleBufferedAllocator) Close() {
	d.buffers[0].Close()
	d.buffers[1].Close()
}

// AllocActive places the value returned by init into the active buffer.
func AllocActive[T any](d *DoubleBufferedAllocator, init func() T) (*T, error) {
	return Alloc[T](d.Active(), init)
}

// AllocActiveUnchecked is AllocActive without the capacity check.
func AllocActiveUnchecked[T any](d *DoubleBufferedAllocator, init func() T) *T {
	return AllocUnchecked[T](d.Active(), init)
}
