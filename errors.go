// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package conjecture

import "runtime"

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "conjecture: " + string(e) }

// ErrNoSuchExample is returned by Find when the search phase exhausts its
// generation budget without ever reaching an Interesting TestData.
const ErrNoSuchExample = Error("no example found satisfying the predicate")

// stopShrinking is the sentinel panicked once the shrink phase has spent
// its max_shrinks budget; it is recovered exactly in Run.
type stopShrinking struct{}

// errRecover is a deferred recovery function, in the same shape as the
// teacher's own errRecover (repeated in flate/common.go, brotli/error.go,
// and bzip2/common.go): it distinguishes the one expected sentinel type
// from everything else, and re-panics anything else (including a
// runtime.Error, and testdata.ErrFrozen) so that genuine bugs are never
// silently swallowed.
func errRecover(stopped *bool) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case stopShrinking:
		*stopped = true
	case runtime.Error:
		panic(ex)
	default:
		panic(ex)
	}
}
