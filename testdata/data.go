// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testdata

import "github.com/dsnet/golib/errs"

// Interval is a half-open span [Start, End) of a buffer consumed coherently
// by one decoder invocation. Start and End are byte offsets into the buffer
// as it stood at the time the interval was recorded.
type Interval struct {
	Start, End int
}

func (iv Interval) length() int { return iv.End - iv.Start }

// TestData is one run's consumption log over a fixed byte buffer. It is
// created for a single run, mutated by draw calls during that run, frozen
// by the owning engine when the run terminates, and immutable thereafter.
//
// The zero value is not usable; construct with New.
type TestData struct {
	buffer []byte
	index  int
	status Status
	frozen bool
	cost   int

	intervals     []Interval
	intervalStack []int
}

// New creates a TestData over buffer. The run starts at Status Valid with
// an empty consumption log. buffer is not copied; the caller must not
// mutate it for the lifetime of the TestData.
func New(buffer []byte) *TestData {
	return &TestData{
		buffer: buffer,
		status: Valid,
	}
}

// Buffer returns the buffer bounding this run. Before Freeze this is the
// buffer the TestData was constructed with; after Freeze, if the run ended
// Interesting, it has been truncated to the consumed prefix.
func (d *TestData) Buffer() []byte { return d.buffer }

// Index reports the number of bytes consumed so far.
func (d *TestData) Index() int { return d.index }

// Status reports the run's current classification.
func (d *TestData) Status() Status { return d.status }

// Cost reports the accumulated shrinking-order penalty.
func (d *TestData) Cost() int { return d.cost }

// Frozen reports whether the TestData has been frozen.
func (d *TestData) Frozen() bool { return d.frozen }

// Intervals returns the recorded example intervals. Before Freeze these
// appear in recording order; after Freeze they are sorted by descending
// length, then ascending start (see Freeze).
func (d *TestData) Intervals() []Interval { return d.intervals }

// Rejected reports whether the run ended in a status that carries no
// interesting value: Invalid or Overrun.
func (d *TestData) Rejected() bool {
	return d.status == Invalid || d.status == Overrun
}

func (d *TestData) assertNotFrozen() {
	if d.frozen {
		errFrozen()
	}
}

// StartExample marks the beginning of a coherent decoder invocation. Every
// StartExample must be paired with exactly one later StopExample; nested
// calls form a stack, so decoders may compose freely.
func (d *TestData) StartExample() {
	d.assertNotFrozen()
	d.intervalStack = append(d.intervalStack, d.index)
}

// StopExample closes the most recently opened example. If any bytes were
// consumed since the matching StartExample, the span is recorded as an
// Interval, unless it is identical to the immediately preceding recorded
// interval (only adjacent duplicates are elided; the log is not globally
// deduplicated).
func (d *TestData) StopExample() {
	d.assertNotFrozen()
	errs.Assert(len(d.intervalStack) > 0, Error("stop_example without a matching start_example"))
	n := len(d.intervalStack) - 1
	start := d.intervalStack[n]
	d.intervalStack = d.intervalStack[:n]
	if start == d.index {
		return
	}
	iv := Interval{start, d.index}
	if last := len(d.intervals) - 1; last >= 0 && d.intervals[last] == iv {
		return
	}
	d.intervals = append(d.intervals, iv)
}

// IncurCost adds a non-negative penalty to the run's accumulated cost. Cost
// is the primary tiebreaker in interest_key: decoders use it to bias the
// shrinker away from buffers that decode to "uglier" values even when the
// buffer itself is no longer.
func (d *TestData) IncurCost(cost int) {
	d.assertNotFrozen()
	errs.Assert(cost >= 0, Error("cost must be non-negative"))
	d.cost += cost
}

// DrawBytes consumes and returns the next n bytes of the buffer, recording
// the span as an Interval. If fewer than n bytes remain, the run is marked
// Overrun, frozen, and stopRun is panicked to unwind to the run boundary;
// DrawBytes never returns a short read.
func (d *TestData) DrawBytes(n int) []byte {
	d.assertNotFrozen()
	errs.Assert(n >= 0, Error("cannot draw a negative number of bytes"))
	start := d.index
	d.index += n
	if d.index > len(d.buffer) {
		d.status = Overrun
		d.Freeze()
		panic(stopRun{})
	}
	d.intervals = append(d.intervals, Interval{start, d.index})
	return d.buffer[start:d.index]
}

// MarkInteresting promotes the run to Interesting if it is currently Valid
// (a run that is already Invalid or Overrun cannot become Interesting), then
// unwinds to the run boundary via stopRun. Predicates call this once their
// check has succeeded.
func (d *TestData) MarkInteresting() {
	d.assertNotFrozen()
	if d.status == Valid {
		d.status = Interesting
	}
	panic(stopRun{})
}

// MarkInvalid demotes the run to Invalid unless it is already Overrun (an
// overrun is a stronger rejection and must not be downgraded), then unwinds
// to the run boundary via stopRun. Decoders call this when they cannot
// produce a usable value from the remaining buffer (e.g. a Filter that
// never finds a passing value).
func (d *TestData) MarkInvalid() {
	d.assertNotFrozen()
	if d.status != Overrun {
		d.status = Invalid
	}
	panic(stopRun{})
}

// Freeze finalizes the TestData: it sorts the recorded intervals by
// descending length then ascending start (the order the shrinker's
// interval-deletion pass depends on), and, if the run ended Interesting,
// truncates the buffer to the consumed prefix so that trailing unused bytes
// are never offered to the shrinker. Freeze is idempotent.
func (d *TestData) Freeze() {
	if d.frozen {
		return
	}
	d.frozen = true
	sortIntervals(d.intervals)
	if d.status == Interesting {
		d.buffer = d.buffer[:d.index]
	}
}

func sortIntervals(intervals []Interval) {
	// Insertion sort: the interval count is small relative to buffer size
	// in practice, and this keeps the comparator inline without pulling in
	// sort.Slice's reflection-based closure for every freeze.
	for i := 1; i < len(intervals); i++ {
		iv := intervals[i]
		j := i - 1
		for j >= 0 && intervalLess(iv, intervals[j]) {
			intervals[j+1] = intervals[j]
			j--
		}
		intervals[j+1] = iv
	}
}

func intervalLess(a, b Interval) bool {
	if a.length() != b.length() {
		return a.length() > b.length()
	}
	return a.Start < b.Start
}

// RunStop reports whether r is the sentinel panic value raised by
// DrawBytes, MarkInteresting, and MarkInvalid. Callers that recover at a
// run boundary use this to distinguish an expected stop from a genuine
// panic (such as ErrFrozen) that must be re-raised.
func RunStop(r any) bool {
	_, ok := r.(stopRun)
	return ok
}
