// SPDX-License-Identifier: MIT

package alloc

import (
	"fmt"
	"math"
	"math/bits"
	"sync"
)

// Float64Size is the size in bytes of one matrix element.
const Float64Size = 8

const panicFreeExceedsInUse = "alloc: free exceeds bytes in use"

// Stats is a consistent snapshot of the Tracker counters.
type Stats struct {
	Allocated   uint64 // cumulative bytes allocated
	Deallocated uint64 // cumulative bytes freed
	InUse       uint64 // Allocated - Deallocated
}

// Sub returns the counters accumulated since base.
// Complexity: O(1).
func (s Stats) Sub(base Stats) Stats {
	return Stats{
		Allocated:   s.Allocated - base.Allocated,
		Deallocated: s.Deallocated - base.Deallocated,
		InUse:       s.InUse - base.InUse,
	}
}

// Balanced reports whether every byte allocated has been freed.
func (s Stats) Balanced() bool { return s.Allocated == s.Deallocated }

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("allocated=%d deallocated=%d in_use=%d", s.Allocated, s.Deallocated, s.InUse)
}

// Tracker counts bytes allocated and released by matrix backing stores.
// The zero value is ready to use.
type Tracker struct {
	mu          sync.Mutex
	allocated   uint64
	deallocated uint64
}

// defaultTracker backs Default; it lives for the whole process.
var defaultTracker = &Tracker{}

// New returns an isolated Tracker with all counters at zero.
func New() *Tracker { return &Tracker{} }

// Default returns the process-wide Tracker used when none is injected.
func Default() *Tracker { return defaultTracker }

// BytesFor returns the size of a rows×cols float64 backing store.
// Non-positive dimensions yield 0; sizes beyond uint64 saturate at MaxUint64.
func BytesFor(rows, cols int) uint64 {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	hi, n := bits.Mul64(uint64(rows), uint64(cols))
	if hi != 0 {
		return math.MaxUint64
	}
	if hi, n = bits.Mul64(n, Float64Size); hi != 0 {
		return math.MaxUint64
	}

	return n
}

// Alloc registers an allocation of n bytes.
// Complexity: O(1).
func (t *Tracker) Alloc(n uint64) {
	t.mu.Lock()
	t.allocated += n
	t.mu.Unlock()
}

// Free registers the release of n bytes.
//
// Releasing more than is currently in use means some store was freed twice
// or never allocated on this tracker; that is a programmer error and panics
// rather than letting the counters wrap.
// Complexity: O(1).
func (t *Tracker) Free(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n > t.allocated-t.deallocated {
		panic(panicFreeExceedsInUse)
	}
	t.deallocated += n
}

// Allocated returns the cumulative number of bytes ever allocated.
func (t *Tracker) Allocated() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.allocated
}

// Deallocated returns the cumulative number of bytes ever freed.
func (t *Tracker) Deallocated() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.deallocated
}

// InUse returns the number of bytes currently allocated and not yet freed.
func (t *Tracker) InUse() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.allocated - t.deallocated
}

// Snapshot returns all three counters read under one lock, so that
// InUse == Allocated - Deallocated holds for the returned value even while
// other goroutines allocate.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Stats{
		Allocated:   t.allocated,
		Deallocated: t.deallocated,
		InUse:       t.allocated - t.deallocated,
	}
}
