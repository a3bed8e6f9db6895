// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena

import "github.com/cznic/mathutil"

// DoubleEndedStackAllocator holds two independent StackAllocators, labeled
// resident and temp. It is meant for two-phase loading, where resident data
// is constructed from temporary data that can be discarded once
// construction is done:
//
//	mResident := d.MarkerResident()
//	config, _ := arena.AllocTemp(d, buildConfig)       // scratch
//	level, _ := arena.AllocResident(d, func() Level {
//		return levelFromConfig(config)
//	})
//	d.ResetTemp()                                       // frees scratch, level lives on
//
// Because resident and temp are independent stacks, temp's destructors run
// independently of resident's - the usual LIFO-on-one-stack constraint does
// not apply across the two sides.
type DoubleEndedStackAllocator struct {
	resident *StackAllocator
	temp     *StackAllocator
}

// NewDoubleEndedStackAllocator creates a DoubleEndedStackAllocator with
// independently chosen capacities for each side.
func NewDoubleEndedStackAllocator(residentCapDrop, residentCapCopy, tempCapDrop, tempCapCopy int) *DoubleEndedStackAllocator {
	return &DoubleEndedStackAllocator{
		resident: NewStackAllocator(residentCapDrop, residentCapCopy),
		temp:     NewStackAllocator(tempCapDrop, tempCapCopy),
	}
}

// NewDoubleEndedStackAllocatorSplit implements the common policy of
// splitting one input capacity in half between resident and temp.
func NewDoubleEndedStackAllocatorSplit(capDrop, capCopy int) *DoubleEndedStackAllocator {
	halfDrop := mathutil.Max(capDrop/2, 0)
	halfCopy := mathutil.Max(capCopy/2, 0)
	return NewDoubleEndedStackAllocator(halfDrop, halfCopy, capDrop-halfDrop, capCopy-halfCopy)
}

// Resident returns the resident-side StackAllocator.
func (d *DoubleEndedStackAllocator) Resident() *StackAllocator { return d.resident }

// Temp returns the temp-side StackAllocator.
func (d *DoubleEndedStackAllocator) Temp() *StackAllocator { return d.temp }

// MarkerResident returns d.Resident().Marker().
func (d *DoubleEndedStackAllocator) MarkerResident() int { return d.resident.Marker() }

// MarkerResidentCopy returns d.Resident().MarkerCopy().
func (d *DoubleEndedStackAllocator) MarkerResidentCopy() int { return d.resident.MarkerCopy() }

// MarkerTemp returns d.Temp().Marker().
func (d *DoubleEndedStackAllocator) MarkerTemp() int { return d.temp.Marker() }

// MarkerTempCopy returns d.Temp().MarkerCopy().
func (d *DoubleEndedStackAllocator) MarkerTempCopy() int { return d.temp.MarkerCopy() }

// CapacityResident returns d.Resident().Capacity().
func (d *DoubleEndedStackAllocator) CapacityResident() int { return d.resident.Capacity() }

// CapacityResidentCopy returns d.Resident().CapacityCopy().
func (d *DoubleEndedStackAllocator) CapacityResidentCopy() int { return d.resident.CapacityCopy() }

// CapacityTemp returns d.Temp().Capacity().
func (d *DoubleEndedStackAllocator) CapacityTemp() int { return d.temp.Capacity() }

// CapacityTempCopy returns d.Temp().CapacityCopy().
func (d *DoubleEndedStackAllocator) CapacityTempCopy() int { return d.temp.CapacityCopy() }

// ResetResident resets the resident side's drop chunk. It leaves
// MarkerTemp/MarkerTempCopy unchanged.
func (d *DoubleEndedStackAllocator) ResetResident() { d.resident.Reset() }

// ResetResidentCopy resets the resident side's copy chunk.
func (d *DoubleEndedStackAllocator) ResetResidentCopy() { d.resident.ResetCopy() }

// ResetTemp resets the temp side's drop chunk. It leaves
// MarkerResident/MarkerResidentCopy unchanged.
func (d *DoubleEndedStackAllocator) ResetTemp() { d.temp.Reset() }

// ResetTempCopy resets the temp side's copy chunk.
func (d *DoubleEndedStackAllocator) ResetTempCopy() { d.temp.ResetCopy() }

// ResetToMarkerResident rolls the resident side's drop chunk back to m.
func (d *DoubleEndedStackAllocator) ResetToMarkerResident(m int) { d.resident.ResetToMarker(m) }

// ResetToMarkerResidentCopy rolls the resident side's copy chunk back to m.
func (d *DoubleEndedStackAllocator) ResetToMarkerResidentCopy(m int) {
	d.resident.ResetToMarkerCopy(m)
}

// ResetToMarkerTemp rolls the temp side's drop chunk back to m.
func (d *DoubleEndedStackAllocator) ResetToMarkerTemp(m int) { d.temp.ResetToMarker(m) }

// ResetToMarkerTempCopy rolls the temp side's copy chunk back to m.
func (d *DoubleEndedStackAllocator) ResetToMarkerTempCopy(m int) { d.temp.ResetToMarkerCopy(m) }

// Close closes both sides.
func (d *DoubleEndedStackAllocator) Close() {
	d.resident.Close()
	d.temp.Close()
}

// AllocResident places the value returned by init on the resident side.
func AllocResident[T any](d *DoubleEndedStackAllocator, init func() T) (*T, error) {
	return Alloc[T](d.resident, init)
}

// AllocResidentUnchecked is AllocResident without the capacity check.
func AllocResidentUnchecked[T any](d *DoubleEndedStackAllocator, init func() T) *T {
	return AllocUnchecked[T](d.resident, init)
}

// AllocTemp places the value returned by init on the temp side.
func AllocTemp[T any](d *DoubleEndedStackAllocator, init func() T) (*T, error) {
	return Alloc[T](d.temp, init)
}

// AllocTempUnchecked is AllocTemp without the capacity check.
func AllocTempUnchecked[T any](d *DoubleEndedStackAllocator, init func() T) *T {
	return AllocUnchecked[T](d.temp, init)
}
