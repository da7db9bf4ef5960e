// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package conjecture

import "github.com/dsnet/conjecture/testdata"

// Find searches for a buffer on which draw and check together reach
// testdata.Interesting, shrinks it to a local minimum, and returns the
// value draw decodes from that minimal buffer. It reports ErrNoSuchExample
// if the search phase exhausts its generation budget without ever finding
// an Interesting buffer.
//
// check is called with the value draw decoded; a true return marks the run
// Interesting, making its value a candidate for Find's result, while a
// false return leaves the run Valid. A call to d.MarkInvalid from within
// draw marks the run Invalid.
//
// A zero Mutations or Generations in settings means 200 mutations and 1000
// generations; any other zero field takes its DefaultSettings value.
func Find(draw func(d *testdata.TestData) any, check func(v any) bool, settings Settings) (any, error) {
	if settings.Mutations == 0 {
		settings.Mutations = 200
	}
	if settings.Generations == 0 {
		settings.Generations = 1000
	}
	settings = settings.withDefaults()

	var result any
	testFunc := func(d *testdata.TestData) {
		v := draw(d)
		debugf("conjecture: %x -> %v", d.Buffer()[:d.Index()], v)
		if check(v) {
			result = v
			d.MarkInteresting()
		}
	}

	runner := NewTestRunner(testFunc, settings)
	runner.Run()

	last := runner.LastData()
	if last == nil || last.Status() != testdata.Interesting {
		return nil, ErrNoSuchExample
	}

	// Re-run the predicate against the frozen, shrunk buffer: decoding is
	// deterministic, so this reproduces exactly the value and outcome that
	// made the run Interesting, and catches a draw/check pair that is not
	// actually a pure function of the buffer.
	final := testdata.New(last.Buffer())
	runner.runTest(final)
	final.Freeze()
	if final.Status() != testdata.Interesting {
		panic(Error("shrunk buffer no longer reproduces an interesting run"))
	}

	return result, nil
}
