// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package conjecture implements the byte-buffer search and shrinking
// engine: TestRunner drives a user predicate against freshly generated or
// mutated buffers, tracks the best ("most interesting yet smallest")
// buffer seen under a status-monotone transition rule, and shrinks it to a
// local minimum once found.
package conjecture

import (
	"bytes"
	cryptorand "crypto/rand"
	"encoding/binary"
	"time"

	"github.com/dsnet/conjecture/internal/rng"
	"github.com/dsnet/conjecture/testdata"
	"github.com/dsnet/golib/errs"
)

// TestFunc is a single run of the property under test: it draws whatever
// values it needs from d and calls d.MarkInteresting or d.MarkInvalid (or
// simply returns, leaving the run Valid) to record the outcome.
type TestFunc func(d *testdata.TestData)

// TestRunner drives TestFunc against a sequence of buffers, searching for
// one that reaches Interesting, then shrinking it. TestRunner is not safe
// for concurrent use: all state (LastData, the mutation/shrink counters,
// and the random source) is owned exclusively by the single goroutine
// calling Run.
type TestRunner struct {
	testFunc TestFunc
	settings Settings
	random   *rng.Source

	lastData *testdata.TestData
	changed  int
	shrinks  int
}

// NewTestRunner creates a TestRunner for fn with the given settings, seeded
// from a fresh source of entropy so that repeated calls explore different
// pseudo-random trajectories (matching the original's "self.random =
// Random()", which draws a new OS-entropy seed per TestRunner). Use
// NewTestRunnerWithSeed to reproduce a specific prior run.
func NewTestRunner(fn TestFunc, settings Settings) *TestRunner {
	return NewTestRunnerWithSeed(fn, settings, freshSeed())
}

// NewTestRunnerWithSeed creates a TestRunner for fn whose pseudo-random
// source is seeded deterministically from seed: the same seed always
// produces the same sequence of generated and mutated buffers, which is
// useful for reproducing or debugging a specific run.
func NewTestRunnerWithSeed(fn TestFunc, settings Settings, seed int64) *TestRunner {
	return &TestRunner{
		testFunc: fn,
		settings: settings.withDefaults(),
		random:   rng.New(seed),
	}
}

// freshSeed draws a seed from the operating system's entropy source,
// falling back to the current time if that source is unavailable.
func freshSeed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// LastData reports the best TestData the runner has found so far. It is
// only meaningful after Run has returned.
func (r *TestRunner) LastData() *testdata.TestData { return r.lastData }

// runTest executes the test function against data, recovering exactly the
// stopRun sentinel that DrawBytes/MarkInteresting/MarkInvalid panic with.
// Anything else — in particular testdata.ErrFrozen, which indicates a
// decoder or engine bug — is re-panicked rather than swallowed.
func (r *TestRunner) runTest(data *testdata.TestData) {
	defer func() {
		if rec := recover(); rec != nil {
			if !testdata.RunStop(rec) {
				panic(rec)
			}
		}
	}()
	r.testFunc(data)
}

// newBuffer draws a fresh random seed buffer, runs the test against it, and
// adopts the frozen result as lastData unconditionally — this is how a
// generation starts over once its mutation budget is exhausted.
func (r *TestRunner) newBuffer() {
	buffer := r.random.Bytes(r.settings.BufferSize)
	data := testdata.New(buffer)
	r.runTest(data)
	data.Freeze()
	r.lastData = data
}

// considerNewTestData implements the transition rule of spec §3: status
// is never allowed to decrease, and at equal status the tie-breaking rule
// depends on which status it is.
func (r *TestRunner) considerNewTestData(data *testdata.TestData) bool {
	last := r.lastData
	switch {
	case last.Status() < data.Status():
		return true
	case last.Status() > data.Status():
		return false
	}
	switch data.Status() {
	case testdata.Invalid:
		return data.Index() >= last.Index()
	case testdata.Overrun:
		return data.Index() <= last.Index()
	case testdata.Interesting:
		// Every shrink pass only ever deletes or replaces a span with one
		// no longer, so a same-status candidate must never have grown.
		errs.Assert(len(data.Buffer()) <= len(last.Buffer()), Error("shrink candidate grew the buffer"))
		if len(data.Buffer()) == len(last.Buffer()) {
			errs.Assert(bytes.Compare(data.Buffer(), last.Buffer()) < 0, Error("shrink candidate is not lexicographically smaller"))
		}
		return interestKeyLess(data, last)
	default:
		return true
	}
}

// interestKeyLess reports whether a's interest_key sorts strictly before
// b's: the lexicographic tuple (cost, #intervals, len(buffer), buffer).
func interestKeyLess(a, b *testdata.TestData) bool {
	if a.Cost() != b.Cost() {
		return a.Cost() < b.Cost()
	}
	if len(a.Intervals()) != len(b.Intervals()) {
		return len(a.Intervals()) < len(b.Intervals())
	}
	if len(a.Buffer()) != len(b.Buffer()) {
		return len(a.Buffer()) < len(b.Buffer())
	}
	return bytes.Compare(a.Buffer(), b.Buffer()) < 0
}

// incorporateNewBuffer is the sole entry point by which a candidate buffer
// can become the new lastData. It first rejects, without running the test
// at all, any candidate whose prefix up to lastData's consumed index
// matches lastData's buffer: since decoding is deterministic, no
// information beyond the already-consumed prefix can change the outcome
// (spec §8's "prefix determinism" property).
func (r *TestRunner) incorporateNewBuffer(buffer []byte) bool {
	n := r.lastData.Index()
	if n <= len(buffer) && n <= len(r.lastData.Buffer()) &&
		bytes.Equal(buffer[:n], r.lastData.Buffer()[:n]) {
		return false
	}
	data := testdata.New(buffer)
	r.runTest(data)
	data.Freeze()
	if !r.considerNewTestData(data) {
		return false
	}
	if r.lastData.Status() == testdata.Interesting {
		r.shrinks++
	}
	r.lastData = data
	r.changed++
	debugf("conjecture: accepted %s buffer of %d bytes, cost %d", data.Status(), len(data.Buffer()), data.Cost())
	if r.shrinks >= r.settings.MaxShrinks {
		panic(stopShrinking{})
	}
	return true
}

// Run executes the full search-then-shrink algorithm of spec §4.3: it
// seeds a buffer, mutates it generation by generation until an Interesting
// buffer is found (or the generation budget is exhausted), then shrinks
// that buffer to a local minimum, honoring MaxShrinks.
func (r *TestRunner) Run() {
	var stopped bool
	defer errRecover(&stopped)
	r.run()
}

func (r *TestRunner) run() {
	r.newBuffer()
	mutations, generation := 0, 0
	for r.lastData.Status() != testdata.Interesting {
		if mutations >= r.settings.Mutations {
			generation++
			if generation >= r.settings.Generations {
				return
			}
			mutations = 0
			r.newBuffer()
			continue
		}
		r.incorporateNewBuffer(r.mutateDataToNewBuffer())
		mutations++
	}
	r.shrink()
}
