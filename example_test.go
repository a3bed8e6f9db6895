// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arena_test

import (
	"fmt"

	"github.com/cznic/arena"
)

type Monster struct {
	HP int
}

func (m *Monster) Drop() {
	fmt.Printf("a monster with %d hp is dying\n", m.HP)
}

// Example demonstrates the single-frame-allocator idiom: reset at the top
// of every cycle, allocate scratch data, use it only until the next reset.
func Example() {
	frameAllocator := arena.NewStackAllocator(100, 100)

	frameAllocator.Reset()
	m, err := arena.Alloc(frameAllocator, func() Monster {
		return Monster{HP: 1}
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(m.HP)

	frameAllocator.Reset()
	// Output:
	// 1
	// a monster with 1 hp is dying
}

// Example_rollback demonstrates obtaining a marker and rolling back to it,
// which only drops the records allocated after the marker was taken.
func Example_rollback() {
	s := arena.NewStackAllocator(200, 200)

	m := s.Marker()
	_, _ = arena.Alloc(s, func() Monster { return Monster{HP: 1} })

	m2 := s.Marker()
	_, _ = arena.Alloc(s, func() Monster { return Monster{HP: 2} })

	s.ResetToMarker(m2)
	s.ResetToMarker(m)
	// Output:
	// a monster with 2 hp is dying
	// a monster with 1 hp is dying
}
