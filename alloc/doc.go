// SPDX-License-Identifier: MIT

// Package alloc accounts for the bytes held by matrix backing stores.
//
// A Tracker keeps three counters:
//
//	allocated   - cumulative bytes ever registered via Alloc
//	deallocated - cumulative bytes ever registered via Free
//	in use      - allocated - deallocated at any instant
//
// Every matrix.Dense registers its backing store on creation and releases
// it on Free, so a balanced sequence of create/free pairs brings InUse back
// to the baseline it started from. Tests use that property to detect leaks.
//
// Trackers are explicit values. Default returns the process-wide tracker that
// constructors fall back to; New returns an isolated one, which is what tests
// and benchmarks should inject so that parallel tests never observe each
// other's allocations.
//
// All methods are safe for concurrent use.
package alloc
