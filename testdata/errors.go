// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testdata

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "testdata: " + string(e) }

// ErrFrozen is returned (as a panic value, see errFrozen) by any mutating
// method called on a TestData after Freeze. Unlike stopRun, it is never
// recovered at a run boundary: it indicates a decoder or engine bug and
// must propagate to the caller.
const ErrFrozen = Error("cannot mutate a frozen TestData")

// stopRun is the non-local run-boundary sentinel. It is raised (panicked)
// by DrawBytes on overrun, by MarkInteresting, and by MarkInvalid, and is
// always caught exactly at the per-run boundary owned by the caller
// (conjecture.TestRunner.runTest). It carries no payload: the outcome of
// the run is read back off the TestData itself.
type stopRun struct{}

// errFrozen panics with ErrFrozen. Mutators call this instead of returning
// an error because the decoder call stack between a user predicate and a
// primitive draw is not expected to thread error returns: a frozen-TestData
// call is always a bug, and bugs should propagate loudly rather than be
// silently swallowed by an uninterested intermediate decoder.
func errFrozen() { panic(ErrFrozen) }
