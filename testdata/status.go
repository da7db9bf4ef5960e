// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testdata implements the byte-buffer substrate that a property
// test run is recorded against: the consumption pointer, the run status,
// the nested example intervals, and the accumulated shrinking cost.
package testdata

// Status classifies the outcome of a single run against a TestData buffer.
// The zero value is Overrun; New explicitly sets a fresh TestData to Valid
// rather than relying on the zero value.
//
// Status is totally ordered and the ordering is load-bearing: the engine's
// transition rule (see the conjecture package) compares statuses directly,
// never by name.
type Status int

const (
	// Overrun means the run tried to read past the end of the buffer.
	Overrun Status = iota
	// Invalid means the run rejected its own input (e.g. a filter gave up).
	Invalid
	// Valid means the run completed without incident but found nothing
	// noteworthy.
	Valid
	// Interesting means the run's predicate was satisfied; this is the
	// status the search phase is looking for and the shrink phase tries to
	// preserve while minimising the buffer.
	Interesting
)

func (s Status) String() string {
	switch s {
	case Overrun:
		return "overrun"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	case Interesting:
		return "interesting"
	default:
		return "status(?)"
	}
}
